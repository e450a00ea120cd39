package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}

// UserRole defines the user role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// DocumentType classifies a clinical document.
type DocumentType string

const (
	DocTypeCaseReport       DocumentType = "case_report"
	DocTypeTextbook         DocumentType = "textbook"
	DocTypeGuideline        DocumentType = "guideline"
	DocTypeDischargeSummary DocumentType = "discharge_summary"
	DocTypeResearchArticle  DocumentType = "research_article"
	DocTypeLabReport        DocumentType = "lab_report"
	DocTypeRadiologyReport  DocumentType = "radiology_report"
	DocTypeUnknown          DocumentType = "unknown"
)

// AllDocumentTypes lists every classifiable document type, excluding unknown.
var AllDocumentTypes = []DocumentType{
	DocTypeCaseReport,
	DocTypeTextbook,
	DocTypeGuideline,
	DocTypeDischargeSummary,
	DocTypeResearchArticle,
	DocTypeLabReport,
	DocTypeRadiologyReport,
}

// Title returns a human-readable name for the document type,
// e.g. "case_report" -> "Case Report".
func (t DocumentType) Title() string {
	switch t {
	case DocTypeCaseReport:
		return "Case Report"
	case DocTypeTextbook:
		return "Textbook"
	case DocTypeGuideline:
		return "Guideline"
	case DocTypeDischargeSummary:
		return "Discharge Summary"
	case DocTypeResearchArticle:
		return "Research Article"
	case DocTypeLabReport:
		return "Lab Report"
	case DocTypeRadiologyReport:
		return "Radiology Report"
	default:
		return "Unknown"
	}
}

// ProcessingStatus represents the document processing lifecycle.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusQueued     ProcessingStatus = "queued"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// ChunkType distinguishes text chunks from image placeholder chunks.
type ChunkType string

const (
	ChunkTypeText  ChunkType = "text"
	ChunkTypeImage ChunkType = "image"
)

// ImageRelevance tags an extracted figure with its clinical role.
type ImageRelevance string

const (
	RelevanceClinicalFinding       ImageRelevance = "clinical_finding"
	RelevanceDiagnosticImaging     ImageRelevance = "diagnostic_imaging"
	RelevanceClinicalAlgorithm     ImageRelevance = "clinical_algorithm"
	RelevanceAnatomicalDiagram     ImageRelevance = "anatomical_diagram"
	RelevanceDataVisualization     ImageRelevance = "data_visualization"
	RelevanceClinicalDocumentation ImageRelevance = "clinical_documentation"
)

// AuditAction identifies a recorded document mutation.
type AuditAction string

const (
	AuditDocumentCreated          AuditAction = "document.created"
	AuditDocumentProcessCompleted AuditAction = "document.process_completed"
	AuditDocumentProcessQueued    AuditAction = "document.process_queued"
	AuditDocumentProcessFailed    AuditAction = "document.process_failed"
	AuditDocumentRetry            AuditAction = "document.retry"
	AuditDocumentDeleted          AuditAction = "document.deleted"
	AuditDocumentTagsAdded        AuditAction = "document.tags_added"
	AuditDocumentTagDeleted       AuditAction = "document.tag_deleted"
)
