package extractor

import (
	"fmt"
	"os"
)

// TextExtractor reads a plain-text file as a single page.
type TextExtractor struct{}

func (e *TextExtractor) Extract(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return []string{string(content)}, nil
}
