package dto

import (
	importapp "github.com/erp/docimport/internal/application/import"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportQuery holds the query parameters of an import request
type ImportQuery struct {
	MatchCustomer bool `form:"match_customer"`
}

// ImportResponse is returned by a successful import
type ImportResponse struct {
	DocType       string                `json:"doc_type"`
	Importer      string                `json:"importer"`
	Order         *trade.CanonicalOrder `json:"order"`
	LineCount     int                   `json:"line_count"`
	TotalUntaxed  decimal.Decimal       `json:"total_untaxed"`
	CustomerID    *uuid.UUID            `json:"customer_id,omitempty"`
	ContactID     *uuid.UUID            `json:"contact_id,omitempty"`
	MatchStrategy string                `json:"match_strategy,omitempty"`
	ArchiveKey    string                `json:"archive_key,omitempty"`
}

// ToImportResponse converts an import result to its API view
func ToImportResponse(r *importapp.ImportResult) ImportResponse {
	return ImportResponse{
		DocType:       r.DocType.String(),
		Importer:      r.Importer,
		Order:         r.Order,
		LineCount:     len(r.Order.Lines),
		TotalUntaxed:  r.Order.TotalUntaxed(),
		CustomerID:    r.CustomerID,
		ContactID:     r.ContactID,
		MatchStrategy: r.MatchStrategy,
		ArchiveKey:    r.ArchiveKey,
	}
}

// DetectResponse is returned by document type detection
type DetectResponse struct {
	DocType  string `json:"doc_type"`
	Document string `json:"document"`
}

// ToDetectResponse converts a detected document type to its API view
func ToDetectResponse(dt trade.DocType) DetectResponse {
	return DetectResponse{DocType: dt.String(), Document: dt.Document()}
}

// HealthResponse reports service health
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Importers []string          `json:"importers"`
	Checks    map[string]string `json:"checks,omitempty"`
}
