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

type documentTagRepo struct {
	db *sqlx.DB
}

// NewDocumentTagRepo creates a new PostgreSQL-backed DocumentTagRepository.
func NewDocumentTagRepo(db *sqlx.DB) port.DocumentTagRepository {
	return &documentTagRepo{db: db}
}

func (r *documentTagRepo) Add(ctx context.Context, tags []*domain.DocumentTag) error {
	if len(tags) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, t := range tags {
		t.CreatedAt = now
	}

	// Re-tagging a document overwrites the previous value for a key.
	query := `INSERT INTO document_tags (id, document_id, key, value, source, created_at)
	VALUES (:id, :document_id, :key, :value, :source, :created_at)
	ON CONFLICT (document_id, key, source) DO UPDATE SET value = EXCLUDED.value`

	if _, err := r.db.NamedExecContext(ctx, query, tags); err != nil {
		return fmt.Errorf("documentTagRepo.Add: %w", err)
	}
	return nil
}

func (r *documentTagRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentTag, error) {
	var tags []*domain.DocumentTag
	err := r.db.SelectContext(ctx, &tags,
		"SELECT * FROM document_tags WHERE document_id = $1 ORDER BY key", documentID)
	if err != nil {
		return nil, fmt.Errorf("documentTagRepo.ListByDocument: %w", err)
	}
	return tags, nil
}

func (r *documentTagRepo) Delete(ctx context.Context, documentID uuid.UUID, key string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM document_tags WHERE document_id = $1 AND key = $2", documentID, key)
	if err != nil {
		return fmt.Errorf("documentTagRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentTagRepo) DeleteBySource(ctx context.Context, documentID uuid.UUID, source string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM document_tags WHERE document_id = $1 AND source = $2",
		documentID, source); err != nil {
		return fmt.Errorf("documentTagRepo.DeleteBySource: %w", err)
	}
	return nil
}
