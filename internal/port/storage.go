package port

import (
	"context"
	"io"
)

// ObjectStorage abstracts the blob store holding uploaded PDFs,
// extracted images and rendered summaries.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	GetPresignedURL(ctx context.Context, key string, expirySecs int64) (string, error)
}
