// Package pdftext reads the text layer of a scan, one entry per physical page.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"tradeflow/internal/domain"
)

// Pages returns one text per physical page of content. Images have no text layer and
// yield a single empty page.
func Pages(fileType domain.FileType, content []byte) ([]string, error) {
	switch fileType {
	case domain.FileTypePDF:
		return Extract(content)
	case domain.FileTypeJPG, domain.FileTypePNG:
		return []string{""}, nil
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

// Extract returns the plain text of every page of a PDF. Pages that are missing or
// whose content cannot be decoded are kept as empty strings so indexes stay aligned
// with physical page numbers.
func Extract(content []byte) (texts []string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			texts, err = nil, fmt.Errorf("pdftext.Extract: malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("pdftext.Extract: %w", err)
	}

	n := r.NumPage()
	texts = make([]string, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts[i-1] = strings.TrimSpace(text)
	}
	return texts, nil
}
