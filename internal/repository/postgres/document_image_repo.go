package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clindex/internal/domain"
	"clindex/internal/port"
)

type documentImageRepo struct {
	db *sqlx.DB
}

// NewDocumentImageRepo creates a new PostgreSQL-backed DocumentImageRepository.
func NewDocumentImageRepo(db *sqlx.DB) port.DocumentImageRepository {
	return &documentImageRepo{db: db}
}

func (r *documentImageRepo) CreateBatch(ctx context.Context, images []*domain.DocumentImage) error {
	if len(images) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, img := range images {
		img.CreatedAt = now
	}

	query := `INSERT INTO document_images (
		id, document_id, page_number, image_index, width, height,
		content_hash, s3_bucket, s3_key, caption, relevance, created_at
	) VALUES (
		:id, :document_id, :page_number, :image_index, :width, :height,
		:content_hash, :s3_bucket, :s3_key, :caption, :relevance, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, images); err != nil {
		return fmt.Errorf("documentImageRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *documentImageRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentImage, error) {
	var images []*domain.DocumentImage
	err := r.db.SelectContext(ctx, &images,
		"SELECT * FROM document_images WHERE document_id = $1 ORDER BY page_number, image_index",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("documentImageRepo.ListByDocument: %w", err)
	}
	return images, nil
}

func (r *documentImageRepo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM document_images WHERE document_id = $1", documentID); err != nil {
		return fmt.Errorf("documentImageRepo.DeleteByDocument: %w", err)
	}
	return nil
}
