// Package extractor turns uploaded documents into ordered page texts for
// the ingestion pipeline.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"pdfchat/internal/service"
)

// Extractor produces the ordered sequence of page-level plain-text strings
// for a document on disk.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// ForFile picks an extractor by file extension. Unsupported extensions are
// rejected with service.ErrUnsupportedFormat before any ingestion work.
func ForFile(path string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".md", ".markdown":
		return NewMarkdownExtractor(), nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", service.ErrUnsupportedFormat, filepath.Ext(path))
	}
}
