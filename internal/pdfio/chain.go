package pdfio

import (
	"context"
	"fmt"
	"log"

	"clindex/internal/port"
)

// ChainExtractor tries backends in order and returns the first result
// that yields any page text. It implements port.PDFExtractor.
type ChainExtractor struct {
	backends []port.PDFExtractor
}

// NewChainExtractor builds the default chain: tabula first for full
// text and image extraction, plaintext as the text-only fallback.
func NewChainExtractor(backends ...port.PDFExtractor) *ChainExtractor {
	if len(backends) == 0 {
		backends = []port.PDFExtractor{NewTabulaExtractor(), NewPlainTextExtractor()}
	}
	return &ChainExtractor{backends: backends}
}

func (c *ChainExtractor) Name() string {
	return "chain"
}

func (c *ChainExtractor) Extract(ctx context.Context, data []byte) (*port.PDFContent, error) {
	var lastErr error

	for _, backend := range c.backends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := backend.Extract(ctx, data)
		if err != nil {
			log.Printf("pdfio.ChainExtractor: %s failed: %v", backend.Name(), err)
			lastErr = err
			continue
		}
		if !hasText(content) {
			log.Printf("pdfio.ChainExtractor: %s returned no text, trying next backend", backend.Name())
			lastErr = fmt.Errorf("%s: no extractable text", backend.Name())
			continue
		}
		return content, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all pdf backends failed: %w", lastErr)
	}
	return nil, fmt.Errorf("no pdf backends configured")
}

func hasText(content *port.PDFContent) bool {
	for _, p := range content.Pages {
		if len(p.Text) > 0 {
			return true
		}
	}
	return false
}
