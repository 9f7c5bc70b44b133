package dto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	importapp "github.com/erp/docimport/internal/application/import"
	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/erp/docimport/internal/infrastructure/ubl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeEmptyDocument, http.StatusBadRequest},
		{ErrCodeDocumentTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnsupported, http.StatusUnsupportedMediaType},
		{ErrCodeDuplicate, http.StatusConflict},
		{ErrCodeParse, http.StatusUnprocessableEntity},
		{ErrCodeSchemaValidation, http.StatusUnprocessableEntity},
		{ErrCodeUnmatchedPartner, http.StatusUnprocessableEntity},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		details int
	}{
		{"format mismatch", ubl.ErrFormatMismatch, ErrCodeUnsupported, 0},
		{"unsupported", importapp.ErrUnsupportedFormat, ErrCodeUnsupported, 0},
		{"duplicate", fmt.Errorf("import: %w", importapp.ErrDuplicateDocument), ErrCodeDuplicate, 0},
		{"empty", importapp.ErrEmptyDocument, ErrCodeEmptyDocument, 0},
		{"too large", importapp.ErrDocumentTooLarge, ErrCodeDocumentTooLarge, 0},
		{"matching disabled", importapp.ErrMatchingDisabled, ErrCodeMatchingDisabled, 0},
		{"partner not found", partnerapp.ErrPartnerNotFound, ErrCodePartnerNotFound, 0},
		{"schema", &ubl.SchemaValidationError{Document: "Order", Version: "2.1", Problems: []string{"a", "b"}}, ErrCodeSchemaValidation, 2},
		{"parse", fmt.Errorf("line 2: %w", &ubl.ParseError{Path: "cbc:Quantity", Err: errors.New("not a number")}), ErrCodeParse, 1},
		{"unmatched", &partnerapp.UnmatchedPartnerError{Unmatched: []trade.PartyIdentifier{
			{SchemeID: "0088", Value: "1"}, {SchemeID: "0007", Value: "2"}, {SchemeID: "0192", Value: "3"},
		}}, ErrCodeUnmatchedPartner, 3},
		{"deadline", fmt.Errorf("match: %w", context.DeadlineExceeded), ErrCodeTimeout, 0},
		{"unknown domain code", shared.NewDomainError("SOMETHING", "odd"), ErrCodeBadRequest, 0},
		{"plain error", errors.New("boom"), ErrCodeInternal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromError(tt.err)
			assert.Equal(t, tt.code, p.Code)
			assert.Equal(t, GetHTTPStatus(tt.code), p.Status)
			assert.Len(t, p.Details, tt.details)
			assert.NotEmpty(t, p.Message)
		})
	}

	t.Run("internal errors hide their message", func(t *testing.T) {
		p := FromError(errors.New("password=hunter2"))
		assert.NotContains(t, p.Message, "hunter2")
	})

	t.Run("unmatched details carry scheme and value", func(t *testing.T) {
		p := FromError(&partnerapp.UnmatchedPartnerError{Unmatched: []trade.PartyIdentifier{{SchemeID: "0088", Value: "7300010000001"}}})
		require.Len(t, p.Details, 1)
		assert.Equal(t, ErrorDetail{Field: "0088", Message: "7300010000001"}, p.Details[0])
	})
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeDuplicate, "Document was already imported", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDuplicate, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeSchemaValidation, "invalid", "req-1").
		WithDetails([]ErrorDetail{{Message: "IssueDate is missing"}})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")
	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeSchemaValidation, errObj["code"])
	assert.Len(t, errObj["details"], 1)
}

func TestWithDetails_SuccessResponseUnchanged(t *testing.T) {
	resp := NewSuccessResponse("ok").WithDetails([]ErrorDetail{{Message: "x"}})
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}
