package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"clindex/internal/domain"
	"clindex/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const docStatsQuery = `SELECT
	COUNT(*) AS total_documents,
	COUNT(CASE WHEN processing_status = 'completed' THEN 1 END) AS processing_completed,
	COUNT(CASE WHEN processing_status = 'failed' THEN 1 END) AS processing_failed,
	COUNT(CASE WHEN processing_status = 'processing' THEN 1 END) AS processing_in_progress,
	COUNT(CASE WHEN processing_status = 'pending' THEN 1 END) AS processing_pending,
	COUNT(CASE WHEN processing_status = 'queued' THEN 1 END) AS processing_queued,
	COALESCE(SUM(chunk_count), 0) AS total_chunks,
	COALESCE(SUM(image_count), 0) AS total_images
FROM documents`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.DocumentStats, error) {
	var stats domain.DocumentStats
	if err := r.db.GetContext(ctx, &stats, docStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats: %w", err)
	}
	return &stats, nil
}

func (r *statsRepo) CountByType(ctx context.Context) ([]domain.TypeCount, error) {
	var counts []domain.TypeCount
	err := r.db.SelectContext(ctx, &counts,
		`SELECT document_type, COUNT(*) AS count
		 FROM documents GROUP BY document_type ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.CountByType: %w", err)
	}
	return counts, nil
}
