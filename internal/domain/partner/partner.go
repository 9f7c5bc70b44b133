package partner

import (
	"strings"

	"github.com/erp/docimport/internal/domain/shared"
	"github.com/google/uuid"
)

// Partner is a company or one of its contacts in the partner directory.
// Contacts are non-company partners attached to a parent company.
type Partner struct {
	shared.BaseEntity
	Name      string
	IsCompany bool
	ParentID  *uuid.UUID
	VAT       string
	Email     string
	Phone     string
	Ref       string
	Active    bool
}

// NewCompany creates an active company partner
func NewCompany(name, vat string) (*Partner, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		IsCompany:  true,
		VAT:        NormalizeVAT(vat),
		Active:     true,
	}, nil
}

// NewContact creates an active contact under the given company
func NewContact(parent *Partner, name, email string) (*Partner, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Contact requires a parent partner")
	}
	if !parent.IsCompany {
		return nil, shared.NewDomainError("INVALID_PARENT", "Contact parent must be a company")
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	parentID := parent.ID
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		ParentID:   &parentID,
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Active:     true,
	}, nil
}

// IsContactOf reports whether p is a non-company contact of parentID
func (p *Partner) IsContactOf(parentID uuid.UUID) bool {
	return !p.IsCompany && p.ParentID != nil && *p.ParentID == parentID
}

// Deactivate archives the partner
func (p *Partner) Deactivate() {
	p.Active = false
	p.Touch()
}

// NormalizeVAT strips spaces and dots and upper-cases a VAT number
func NormalizeVAT(vat string) string {
	r := strings.NewReplacer(" ", "", ".", "", "-", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(vat)))
}

func validatePartnerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot exceed 200 characters")
	}
	return nil
}
