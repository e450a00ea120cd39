package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clindex/internal/domain"
	"clindex/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, file_id, name, document_type, type_confidence, page_count,
		extracted_data, processing_status, processing_error, process_attempts,
		retry_after, processed_at, chunk_count, image_count, summary_s3_key,
		created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13, $14, $15,
		$16, $17, $18
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.FileID, doc.Name, doc.DocumentType, doc.TypeConfidence, doc.PageCount,
		doc.ExtractedData, doc.ProcessingStatus, doc.ProcessingError, doc.ProcessAttempts,
		doc.RetryAfter, doc.ProcessedAt, doc.ChunkCount, doc.ImageCount, doc.SummaryS3Key,
		doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "file_id") {
			return domain.ErrDocumentAlreadyExists
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE file_id = $1", fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByFileID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error) {
	where, args := buildDocumentFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM documents d" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT d.* FROM documents d%s ORDER BY d.created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var docs []*domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

// buildDocumentFilter assembles the WHERE clause and positional args
// shared by the count and select queries.
func buildDocumentFilter(filter domain.DocumentFilter) (string, []any) {
	var conds []string
	var args []any

	next := func() string { return "$" + strconv.Itoa(len(args)) }

	if filter.DocumentType != nil {
		args = append(args, *filter.DocumentType)
		conds = append(conds, "d.document_type = "+next())
	}
	if filter.ProcessingStatus != nil {
		args = append(args, *filter.ProcessingStatus)
		conds = append(conds, "d.processing_status = "+next())
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, "EXISTS (SELECT 1 FROM document_tags t WHERE t.document_id = d.id AND t.value = "+next()+")")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, "d.name ILIKE "+next())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	query := `UPDATE documents SET
		name = $2, document_type = $3, type_confidence = $4, page_count = $5,
		extracted_data = $6, processing_status = $7, processing_error = $8,
		process_attempts = $9, retry_after = $10, processed_at = $11,
		chunk_count = $12, image_count = $13, summary_s3_key = $14, updated_at = $15
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Name, doc.DocumentType, doc.TypeConfidence, doc.PageCount,
		doc.ExtractedData, doc.ProcessingStatus, doc.ProcessingError,
		doc.ProcessAttempts, doc.RetryAfter, doc.ProcessedAt,
		doc.ChunkCount, doc.ImageCount, doc.SummaryS3Key, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus, processingError string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET processing_status = $2, processing_error = $3, updated_at = $4 WHERE id = $1`,
		id, status, processingError, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateProcessingStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) SetRetryAfter(ctx context.Context, id uuid.UUID, retryAfter time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET retry_after = $2, updated_at = $3 WHERE id = $1`,
		id, retryAfter, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("documentRepo.SetRetryAfter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) ClaimQueued(ctx context.Context, limit int) ([]*domain.Document, error) {
	// SKIP LOCKED lets concurrent workers claim disjoint batches.
	query := `UPDATE documents SET
		processing_status = 'processing',
		process_attempts = process_attempts + 1,
		updated_at = NOW()
	WHERE id IN (
		SELECT id FROM documents
		WHERE processing_status = 'queued'
		  AND (retry_after IS NULL OR retry_after <= NOW())
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING *`

	var docs []*domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, limit); err != nil {
		return nil, fmt.Errorf("documentRepo.ClaimQueued: %w", err)
	}
	return docs, nil
}
