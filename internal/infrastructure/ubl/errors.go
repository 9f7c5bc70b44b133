package ubl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormatMismatch means the document root is not a supported UBL order
// document. It is a negative match: callers should try another importer.
var ErrFormatMismatch = errors.New("ubl: not a UBL Order or RequestForQuotation document")

// errElementMissing is wrapped by ParseError for required elements
var errElementMissing = errors.New("required element is missing")

// ParseError reports a structural or numeric failure while reading a document
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("ubl: cannot read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

func missing(path string) error {
	return &ParseError{Path: path, Err: errElementMissing}
}

// IsMissingElement reports whether err is a ParseError for an absent required element
func IsMissingElement(err error) bool {
	return errors.Is(err, errElementMissing)
}

// SchemaValidationError is returned when a document does not conform to the
// schema of its detected document type
type SchemaValidationError struct {
	Document string
	Version  string
	Problems []string
}

// Error implements the error interface
func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("ubl: %s %s failed schema validation, %d problem(s) found:\n - %s",
		e.Document, e.Version, len(e.Problems), strings.Join(e.Problems, "\n - "))
}
