package pdfio

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"

	"clindex/internal/port"
)

// PlainTextExtractor is a text-only backend reading PDFs directly from
// memory. It recovers no images, so it only runs when the primary
// backend fails.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Name() string {
	return "plaintext"
}

func (e *PlainTextExtractor) Extract(ctx context.Context, data []byte) (*port.PDFContent, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdfio.PlainTextExtractor: open pdf: %w", err)
	}

	pageCount := r.NumPage()
	content := &port.PDFContent{PageCount: pageCount}

	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			content.Pages = append(content.Pages, port.PageText{Page: i})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("pdfio.PlainTextExtractor: page %d text failed: %v", i, err)
			text = ""
		}
		content.Pages = append(content.Pages, port.PageText{Page: i, Text: text})
	}

	return content, nil
}
