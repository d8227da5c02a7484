// Package preview produces plain-text previews of stored attachment bodies.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"bizmate/internal/port"
)

type pdfExtractor struct{}

// NewPDFExtractor creates a TextExtractor for PDF attachment bodies.
func NewPDFExtractor() port.TextExtractor {
	return &pdfExtractor{}
}

func (e *pdfExtractor) ExtractText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	doc, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("new pdf reader: %w", err)
	}

	var builder strings.Builder
	total := doc.NumPage()
	for page := 1; page <= total; page++ {
		p := doc.Page(page)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", page, err)
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
