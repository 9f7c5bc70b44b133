package partner

import (
	"strings"

	"github.com/erp/docimport/internal/domain/shared"
	"github.com/google/uuid"
)

// IdentifierStatus is the lifecycle state of an identifier number
type IdentifierStatus string

const (
	IdentifierStatusDraft   IdentifierStatus = "draft"
	IdentifierStatusOpen    IdentifierStatus = "open"
	IdentifierStatusPending IdentifierStatus = "pending"
	IdentifierStatusClose   IdentifierStatus = "close"
)

// IsValid checks if the status is known
func (s IdentifierStatus) IsValid() bool {
	switch s {
	case IdentifierStatusDraft, IdentifierStatusOpen, IdentifierStatusPending, IdentifierStatusClose:
		return true
	}
	return false
}

// IdentifierCategory is an identifier scheme known to the directory.
// Code matches the schemeID found in documents.
type IdentifierCategory struct {
	shared.BaseEntity
	Code string
	Name string
}

// NewIdentifierCategory creates a category for the given scheme code
func NewIdentifierCategory(code, name string) (*IdentifierCategory, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Identifier category code cannot be empty")
	}
	if len(code) > 64 {
		return nil, shared.NewDomainError("INVALID_CODE", "Identifier category code cannot exceed 64 characters")
	}
	if name == "" {
		name = code
	}
	return &IdentifierCategory{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
	}, nil
}

// IdentifierNumber is one identifier value owned by a partner
type IdentifierNumber struct {
	shared.BaseEntity
	CategoryID uuid.UUID
	PartnerID  uuid.UUID
	Value      string
	Status     IdentifierStatus
}

// NewIdentifierNumber creates an open identifier for the partner
func NewIdentifierNumber(category *IdentifierCategory, partnerID uuid.UUID, value string) (*IdentifierNumber, error) {
	if category == nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Identifier number requires a category")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, shared.NewDomainError("INVALID_VALUE", "Identifier number value cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Identifier number requires a partner")
	}
	return &IdentifierNumber{
		BaseEntity: shared.NewBaseEntity(),
		CategoryID: category.ID,
		PartnerID:  partnerID,
		Value:      value,
		Status:     IdentifierStatusOpen,
	}, nil
}

// IsActive reports whether the identifier can still be matched
func (n *IdentifierNumber) IsActive() bool {
	return n.Status != IdentifierStatusClose
}

// Close retires the identifier so lookups no longer return it
func (n *IdentifierNumber) Close() error {
	if n.Status == IdentifierStatusClose {
		return shared.ErrInvalidState
	}
	n.Status = IdentifierStatusClose
	n.Touch()
	return nil
}
