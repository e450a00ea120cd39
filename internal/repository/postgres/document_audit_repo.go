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

type documentAuditRepo struct {
	db *sqlx.DB
}

// NewDocumentAuditRepo creates a new PostgreSQL-backed DocumentAuditRepository.
func NewDocumentAuditRepo(db *sqlx.DB) port.DocumentAuditRepository {
	return &documentAuditRepo{db: db}
}

func (r *documentAuditRepo) Record(ctx context.Context, entry *domain.DocumentAuditEntry) error {
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO document_audit (id, document_id, user_id, action, changes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.DocumentID, entry.UserID, entry.Action, entry.Changes, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentAuditRepo.Record: %w", err)
	}
	return nil
}

func (r *documentAuditRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentAuditEntry, error) {
	var entries []*domain.DocumentAuditEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM document_audit WHERE document_id = $1 ORDER BY created_at DESC", documentID)
	if err != nil {
		return nil, fmt.Errorf("documentAuditRepo.ListByDocument: %w", err)
	}
	return entries, nil
}
