// Package pdfio implements the PDF extraction backends. The tabula
// backend handles both text and images; the plaintext backend is a
// text-only fallback used when tabula cannot parse a file.
package pdfio

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"

	"clindex/internal/port"
)

// TabulaExtractor extracts page text and embedded images using the
// tabula PDF engine. The engine reads from a file handle, so the input
// bytes are staged in a temp file for the duration of the extraction.
type TabulaExtractor struct{}

func NewTabulaExtractor() *TabulaExtractor {
	return &TabulaExtractor{}
}

func (e *TabulaExtractor) Name() string {
	return "tabula"
}

func (e *TabulaExtractor) Extract(ctx context.Context, data []byte) (*port.PDFContent, error) {
	tmp, err := os.CreateTemp("", "clindex-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("pdfio.TabulaExtractor: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("pdfio.TabulaExtractor: stage pdf: %w", err)
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("pdfio.TabulaExtractor: rewind temp file: %w", err)
	}

	r, err := reader.NewReader(tmp)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("pdfio.TabulaExtractor: open pdf: %w", err)
	}
	defer r.Close()

	pageCount, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("pdfio.TabulaExtractor: page count: %w", err)
	}

	content := &port.PDFContent{PageCount: pageCount}

	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, warnings, err := tabula.FromReader(r).Pages(i + 1).Text()
		if err != nil {
			return nil, fmt.Errorf("pdfio.TabulaExtractor: page %d text: %w", i+1, err)
		}
		if len(warnings) > 0 {
			log.Printf("pdfio.TabulaExtractor: page %d produced %d warnings", i+1, len(warnings))
		}
		content.Pages = append(content.Pages, port.PageText{Page: i + 1, Text: text})

		page, err := r.GetPage(i)
		if err != nil {
			log.Printf("pdfio.TabulaExtractor: page %d load failed, skipping images: %v", i+1, err)
			continue
		}
		images, err := r.ExtractPageImages(page)
		if err != nil {
			log.Printf("pdfio.TabulaExtractor: page %d image extraction failed: %v", i+1, err)
			continue
		}
		for idx, img := range images {
			pngData, err := img.ToPNG()
			if err != nil {
				log.Printf("pdfio.TabulaExtractor: page %d image %d encode failed: %v", i+1, idx+1, err)
				continue
			}
			content.Images = append(content.Images, port.PageImage{
				Page:   i + 1,
				Index:  idx + 1,
				PNG:    pngData,
				Width:  img.Width,
				Height: img.Height,
			})
		}
	}

	return content, nil
}
