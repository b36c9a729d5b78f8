package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrFileNotFound          = errors.New("file not found")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload failed")
	ErrInvalidItems          = errors.New("invalid document items")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrNothingToFold         = errors.New("inference returned no page annotations")
	ErrDocumentNotParsed     = errors.New("document has not been parsed yet")
	ErrNotPurchaseOrder      = errors.New("document is not a purchase order")
	ErrNoPageTexts           = errors.New("document has no page texts")
	ErrTooManyDocuments      = errors.New("too many documents requested")
	ErrInvalidExportFormat   = errors.New("invalid export format")
	ErrDocumentAlreadyExists = errors.New("document already exists for this file")
	ErrInvalidRules          = errors.New("invalid substitution rules")
)
