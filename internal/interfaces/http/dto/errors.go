package dto

import (
	"context"
	"errors"
	"net/http"

	importapp "github.com/erp/docimport/internal/application/import"
	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/infrastructure/ubl"
)

// Error codes returned by the API
const (
	ErrCodeInternal         = "ERR_INTERNAL"
	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeForbidden        = "ERR_FORBIDDEN"
	ErrCodeEmptyDocument    = "ERR_EMPTY_DOCUMENT"
	ErrCodeDocumentTooLarge = "ERR_DOCUMENT_TOO_LARGE"
	ErrCodeUnsupported      = "ERR_UNSUPPORTED_FORMAT"
	ErrCodeDuplicate        = "ERR_DUPLICATE_DOCUMENT"
	ErrCodeParse            = "ERR_PARSE"
	ErrCodeSchemaValidation = "ERR_SCHEMA_VALIDATION"
	ErrCodeUnmatchedPartner = "ERR_UNMATCHED_PARTNER"
	ErrCodePartnerNotFound  = "ERR_PARTNER_NOT_FOUND"
	ErrCodeMatchingDisabled = "ERR_MATCHING_DISABLED"
	ErrCodeTimeout          = "ERR_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeEmptyDocument:    http.StatusBadRequest,
	ErrCodeDocumentTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeUnsupported:      http.StatusUnsupportedMediaType,
	ErrCodeDuplicate:        http.StatusConflict,
	ErrCodeParse:            http.StatusUnprocessableEntity,
	ErrCodeSchemaValidation: http.StatusUnprocessableEntity,
	ErrCodeUnmatchedPartner: http.StatusUnprocessableEntity,
	ErrCodePartnerNotFound:  http.StatusUnprocessableEntity,
	ErrCodeMatchingDisabled: http.StatusNotImplemented,
	ErrCodeTimeout:          http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodes maps domain error codes to API error codes
var domainCodes = map[string]string{
	"EMPTY_DOCUMENT":     ErrCodeEmptyDocument,
	"DOCUMENT_TOO_LARGE": ErrCodeDocumentTooLarge,
	"UNSUPPORTED_FORMAT": ErrCodeUnsupported,
	"DUPLICATE_DOCUMENT": ErrCodeDuplicate,
	"MATCHING_DISABLED":  ErrCodeMatchingDisabled,
	"PARTNER_NOT_FOUND":  ErrCodePartnerNotFound,
	"NOT_FOUND":          ErrCodeNotFound,
	"INVALID_INPUT":      ErrCodeBadRequest,
}

// ErrorPayload is the API view of an error
type ErrorPayload struct {
	Status  int
	Code    string
	Message string
	Details []ErrorDetail
}

// FromError classifies err into an API error. Unknown errors become
// ERR_INTERNAL with a generic message so internals do not leak.
func FromError(err error) ErrorPayload {
	var (
		schemaErr    *ubl.SchemaValidationError
		parseErr     *ubl.ParseError
		unmatchedErr *partnerapp.UnmatchedPartnerError
		domainErr    *shared.DomainError
	)
	switch {
	case errors.Is(err, ubl.ErrFormatMismatch):
		return payload(ErrCodeUnsupported, importapp.ErrUnsupportedFormat.Message, nil)
	case errors.As(err, &schemaErr):
		details := make([]ErrorDetail, len(schemaErr.Problems))
		for i, p := range schemaErr.Problems {
			details[i] = ErrorDetail{Message: p}
		}
		return payload(ErrCodeSchemaValidation,
			"Document does not conform to the "+schemaErr.Document+" "+schemaErr.Version+" schema", details)
	case errors.As(err, &parseErr):
		return payload(ErrCodeParse, parseErr.Error(), []ErrorDetail{{Field: parseErr.Path, Message: parseErr.Err.Error()}})
	case errors.As(err, &unmatchedErr):
		details := make([]ErrorDetail, len(unmatchedErr.Unmatched))
		for i, id := range unmatchedErr.Unmatched {
			details[i] = ErrorDetail{Field: id.SchemeID, Message: id.Value}
		}
		return payload(ErrCodeUnmatchedPartner, unmatchedErr.Error(), details)
	case errors.Is(err, context.DeadlineExceeded):
		return payload(ErrCodeTimeout, "Import did not finish in time", nil)
	case errors.As(err, &domainErr):
		if code, ok := domainCodes[domainErr.Code]; ok {
			return payload(code, domainErr.Message, nil)
		}
		return payload(ErrCodeBadRequest, domainErr.Message, nil)
	default:
		return payload(ErrCodeInternal, "An internal error occurred", nil)
	}
}

func payload(code, message string, details []ErrorDetail) ErrorPayload {
	return ErrorPayload{
		Status:  GetHTTPStatus(code),
		Code:    code,
		Message: message,
		Details: details,
	}
}
