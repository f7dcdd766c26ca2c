package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts plain text from a PDF, one string per page.
type PDFExtractor struct{}

// Extract opens the PDF and reads every page in order. Pages without a
// content stream yield an empty string so page numbering stays aligned
// with the source document.
func (e *PDFExtractor) Extract(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
