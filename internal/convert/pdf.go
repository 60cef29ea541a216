// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFConverter extracts text from PDF files row by row, so that each
// visual line of the page becomes one line of output.
type PDFConverter struct{}

// Convert reads every page of the PDF at path. Pages without content are
// skipped.
func (PDFConverter) Convert(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteByte('\n')
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no text found in PDF %s", path)
	}
	return b.String(), nil
}
