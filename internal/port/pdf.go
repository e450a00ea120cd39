package port

import "context"

// PageText is the extracted text of a single page.
type PageText struct {
	Page int
	Text string
}

// PageImage is a raster image extracted from a page, encoded as PNG.
type PageImage struct {
	Page   int
	Index  int
	PNG    []byte
	Width  int
	Height int
}

// PDFContent is the full extraction result for one document.
type PDFContent struct {
	PageCount int
	Pages     []PageText
	Images    []PageImage
}

// PDFExtractor pulls text and images out of a PDF byte stream.
type PDFExtractor interface {
	Extract(ctx context.Context, data []byte) (*PDFContent, error)
	Name() string
}
