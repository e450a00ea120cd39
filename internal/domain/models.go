package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded file.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Document represents a processed clinical document linked to an uploaded file.
// ExtractedData holds the type-specific payload (see internal/clinical).
type Document struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	FileID           uuid.UUID        `db:"file_id" json:"file_id"`
	Name             string           `db:"name" json:"name"`
	DocumentType     DocumentType     `db:"document_type" json:"document_type"`
	TypeConfidence   float64          `db:"type_confidence" json:"type_confidence"`
	PageCount        int              `db:"page_count" json:"page_count"`
	ExtractedData    json.RawMessage  `db:"extracted_data" json:"extracted_data"`
	ProcessingStatus ProcessingStatus `db:"processing_status" json:"processing_status"`
	ProcessingError  string           `db:"processing_error" json:"processing_error"`
	ProcessAttempts  int              `db:"process_attempts" json:"process_attempts"`
	RetryAfter       *time.Time       `db:"retry_after" json:"retry_after"`
	ProcessedAt      *time.Time       `db:"processed_at" json:"processed_at"`
	ChunkCount       int              `db:"chunk_count" json:"chunk_count"`
	ImageCount       int              `db:"image_count" json:"image_count"`
	SummaryS3Key     string           `db:"summary_s3_key" json:"summary_s3_key"`
	CreatedBy        uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Chunk is a retrieval-sized slice of a processed document.
type Chunk struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	DocumentID   uuid.UUID    `db:"document_id" json:"document_id"`
	ChunkIndex   int          `db:"chunk_index" json:"chunk_index"`
	ChunkType    ChunkType    `db:"chunk_type" json:"chunk_type"`
	Text         string       `db:"text" json:"text"`
	TokenCount   int          `db:"token_count" json:"token_count"`
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	PageNumber   int          `db:"page_number" json:"page_number"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// DocumentImage is a figure extracted from a document page.
type DocumentImage struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	DocumentID  uuid.UUID      `db:"document_id" json:"document_id"`
	PageNumber  int            `db:"page_number" json:"page_number"`
	ImageIndex  int            `db:"image_index" json:"image_index"`
	Width       int            `db:"width" json:"width"`
	Height      int            `db:"height" json:"height"`
	ContentHash string         `db:"content_hash" json:"content_hash"`
	S3Bucket    string         `db:"s3_bucket" json:"s3_bucket"`
	S3Key       string         `db:"s3_key" json:"s3_key"`
	Caption     string         `db:"caption" json:"caption"`
	Relevance   ImageRelevance `db:"relevance" json:"relevance"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// DocumentTag represents a searchable tag on a document.
// Source is "user" for manually added tags and "auto" for tags
// extracted from the document's structured payload.
type DocumentTag struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DocumentID uuid.UUID `db:"document_id" json:"document_id"`
	Key        string    `db:"key" json:"key"`
	Value      string    `db:"value" json:"value"`
	Source     string    `db:"source" json:"source"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// DocumentAuditEntry records a document mutation for the audit trail.
type DocumentAuditEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	DocumentID uuid.UUID       `db:"document_id" json:"document_id"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id"`
	Action     string          `db:"action" json:"action"`
	Changes    json.RawMessage `db:"changes" json:"changes"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	DocumentType     *DocumentType
	ProcessingStatus *ProcessingStatus
	Tag              string
	Search           string
	Limit            int
	Offset           int
}

// DocumentStats aggregates document counts by status and type.
type DocumentStats struct {
	TotalDocuments       int `db:"total_documents" json:"total_documents"`
	ProcessingCompleted  int `db:"processing_completed" json:"processing_completed"`
	ProcessingFailed     int `db:"processing_failed" json:"processing_failed"`
	ProcessingInProgress int `db:"processing_in_progress" json:"processing_in_progress"`
	ProcessingPending    int `db:"processing_pending" json:"processing_pending"`
	ProcessingQueued     int `db:"processing_queued" json:"processing_queued"`
	TotalChunks          int `db:"total_chunks" json:"total_chunks"`
	TotalImages          int `db:"total_images" json:"total_images"`
}

// TypeCount is a document count for a single document type.
type TypeCount struct {
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	Count        int          `db:"count" json:"count"`
}
