package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clindex/internal/domain"
)

// DocumentRepository handles persistence of documents and their processing state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id uuid.UUID) error

	UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus, processingError string) error
	SetRetryAfter(ctx context.Context, id uuid.UUID, retryAfter time.Time) error

	// ClaimQueued atomically claims up to limit queued documents whose
	// retry window has elapsed and marks them processing. Safe to call
	// from multiple workers.
	ClaimQueued(ctx context.Context, limit int) ([]*domain.Document, error)
}

// ChunkRepository handles persistence of document chunks.
type ChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []*domain.Chunk) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.Chunk, error)
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}

// DocumentImageRepository handles persistence of extracted images.
type DocumentImageRepository interface {
	CreateBatch(ctx context.Context, images []*domain.DocumentImage) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentImage, error)
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}

// DocumentTagRepository handles persistence of document tags.
type DocumentTagRepository interface {
	Add(ctx context.Context, tags []*domain.DocumentTag) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentTag, error)
	Delete(ctx context.Context, documentID uuid.UUID, key string) error
	DeleteBySource(ctx context.Context, documentID uuid.UUID, source string) error
}

// DocumentAuditRepository records the audit trail of document operations.
type DocumentAuditRepository interface {
	Record(ctx context.Context, entry *domain.DocumentAuditEntry) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*domain.DocumentAuditEntry, error)
}

// StatsRepository aggregates corpus-level statistics.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.DocumentStats, error)
	CountByType(ctx context.Context) ([]domain.TypeCount, error)
}
