package partner

import (
	"context"

	"github.com/google/uuid"
)

// IdentifierDirectory provides read access to identifier categories and numbers
type IdentifierDirectory interface {
	// FindCategoriesByCode returns the categories whose code is in codes
	FindCategoriesByCode(ctx context.Context, codes []string) ([]IdentifierCategory, error)

	// FindActiveIdentifier returns the first non-closed identifier with the
	// given category and exact value. Returns shared.ErrNotFound on a miss.
	FindActiveIdentifier(ctx context.Context, categoryID uuid.UUID, value string) (*IdentifierNumber, error)
}

// ContactFilter restricts a contact search
type ContactFilter struct {
	ParentID  uuid.UUID
	IsCompany bool
	Email     string
	Name      string
}

// PartnerDirectory provides read access to partners and their contacts
type PartnerDirectory interface {
	// FindByID finds a partner by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)

	// FindCompanyByVAT finds an active company by normalized VAT
	FindCompanyByVAT(ctx context.Context, vat string) (*Partner, error)

	// FindByEmail finds an active partner by email, case-insensitively
	FindByEmail(ctx context.Context, email string) (*Partner, error)

	// FindByName finds an active company by name, case-insensitively
	FindByName(ctx context.Context, name string) (*Partner, error)

	// FindContacts lists active partners matching the filter
	FindContacts(ctx context.Context, filter ContactFilter) ([]Partner, error)
}

// DirectoryWriter seeds and maintains the directory
type DirectoryWriter interface {
	// SavePartner creates or updates a partner
	SavePartner(ctx context.Context, p *Partner) error

	// SaveCategory creates or updates an identifier category
	SaveCategory(ctx context.Context, c *IdentifierCategory) error

	// SaveIdentifier creates or updates an identifier number
	SaveIdentifier(ctx context.Context, n *IdentifierNumber) error
}
