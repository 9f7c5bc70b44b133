package partner

import (
	"context"
	"strings"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/trade"
)

// ContactMatcher narrows a matched company down to one of its contacts
type ContactMatcher interface {
	// FindContact returns the contact of company described by party, or nil
	FindContact(ctx context.Context, company *partner.Partner, party trade.Party) (*partner.Partner, error)
}

// DirectoryContactMatcher looks up non-company children of the matched
// partner by email, then by contact name
type DirectoryContactMatcher struct {
	partners partner.PartnerDirectory
}

// NewDirectoryContactMatcher creates a DirectoryContactMatcher
func NewDirectoryContactMatcher(partners partner.PartnerDirectory) *DirectoryContactMatcher {
	return &DirectoryContactMatcher{partners: partners}
}

// FindContact implements ContactMatcher
func (m *DirectoryContactMatcher) FindContact(ctx context.Context, company *partner.Partner, party trade.Party) (*partner.Partner, error) {
	if company == nil {
		return nil, nil
	}
	filters := make([]partner.ContactFilter, 0, 2)
	if email := strings.TrimSpace(party.Email); email != "" {
		filters = append(filters, partner.ContactFilter{ParentID: company.ID, IsCompany: false, Email: email})
	}
	if name := strings.TrimSpace(party.ContactName); name != "" {
		filters = append(filters, partner.ContactFilter{ParentID: company.ID, IsCompany: false, Name: name})
	}
	for _, filter := range filters {
		contacts, err := m.partners.FindContacts(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range contacts {
			if contacts[i].IsContactOf(company.ID) {
				return &contacts[i], nil
			}
		}
	}
	return nil, nil
}
