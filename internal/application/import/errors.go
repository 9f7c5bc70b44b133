package importapp

import "github.com/erp/docimport/internal/domain/shared"

// Import errors
var (
	ErrEmptyDocument     = shared.NewDomainError("EMPTY_DOCUMENT", "Document is empty")
	ErrDocumentTooLarge  = shared.NewDomainError("DOCUMENT_TOO_LARGE", "Document exceeds the maximum import size")
	ErrUnsupportedFormat = shared.NewDomainError("UNSUPPORTED_FORMAT", "No importer accepts this document")
	ErrDuplicateDocument = shared.NewDomainError("DUPLICATE_DOCUMENT", "Document was already imported")
	ErrMatchingDisabled  = shared.NewDomainError("MATCHING_DISABLED", "Customer matching is not configured")
)
