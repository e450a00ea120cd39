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

type chunkRepo struct {
	db *sqlx.DB
}

// NewChunkRepo creates a new PostgreSQL-backed ChunkRepository.
func NewChunkRepo(db *sqlx.DB) port.ChunkRepository {
	return &chunkRepo{db: db}
}

func (r *chunkRepo) CreateBatch(ctx context.Context, chunks []*domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, c := range chunks {
		c.CreatedAt = now
	}

	query := `INSERT INTO chunks (
		id, document_id, chunk_index, chunk_type, text, token_count,
		document_type, page_number, created_at
	) VALUES (
		:id, :document_id, :chunk_index, :chunk_type, :text, :token_count,
		:document_type, :page_number, :created_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, chunks); err != nil {
		return fmt.Errorf("chunkRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *chunkRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.Chunk, error) {
	var chunks []*domain.Chunk
	err := r.db.SelectContext(ctx, &chunks,
		"SELECT * FROM chunks WHERE document_id = $1 ORDER BY chunk_index", documentID)
	if err != nil {
		return nil, fmt.Errorf("chunkRepo.ListByDocument: %w", err)
	}
	return chunks, nil
}

func (r *chunkRepo) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = $1", documentID); err != nil {
		return fmt.Errorf("chunkRepo.DeleteByDocument: %w", err)
	}
	return nil
}
