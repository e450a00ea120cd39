package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserInactive           = errors.New("user is inactive")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrDocumentAlreadyExists  = errors.New("document already exists for this file")
	ErrDocumentNotProcessed   = errors.New("document has not been processed yet")
	ErrInsufficientRole       = errors.New("insufficient role for this action")
	ErrNoExtractableText      = errors.New("no extractable text in document")
	ErrSummaryNotAvailable    = errors.New("summary not available for this document")
)
