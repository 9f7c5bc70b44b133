package partner

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/domain/shared/strategy"
	"github.com/erp/docimport/internal/domain/trade"
)

// GenericStrategy resolves a party by VAT, then email, then company name
type GenericStrategy struct {
	strategy.BaseStrategy
	partners partner.PartnerDirectory
	contacts ContactMatcher
}

// NewGenericStrategy creates a GenericStrategy
func NewGenericStrategy(partners partner.PartnerDirectory, contacts ContactMatcher) *GenericStrategy {
	return &GenericStrategy{
		BaseStrategy: strategy.NewBaseStrategy("generic",
			strategy.StrategyTypePartnerMatch,
			"Match on VAT number, email address or name"),
		partners: partners,
		contacts: contacts,
	}
}

// Match implements MatchStrategy
func (s *GenericStrategy) Match(ctx context.Context, party trade.Party) (MatchOutcome, error) {
	vat := partner.NormalizeVAT(party.VAT)
	email := strings.ToLower(strings.TrimSpace(party.Email))
	name := strings.TrimSpace(party.Name)
	if vat == "" && email == "" && name == "" {
		return MatchOutcome{}, ErrNotApplicable
	}

	lookups := []struct {
		value string
		find  func(context.Context, string) (*partner.Partner, error)
	}{
		{vat, s.partners.FindCompanyByVAT},
		{email, s.partners.FindByEmail},
		{name, s.partners.FindByName},
	}
	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		found, err := l.find(ctx, l.value)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return MatchOutcome{}, err
		}
		return s.resolve(ctx, found, party)
	}
	return MatchOutcome{}, ErrPartnerNotFound
}

func (s *GenericStrategy) resolve(ctx context.Context, found *partner.Partner, party trade.Party) (MatchOutcome, error) {
	if found.IsCompany || found.ParentID == nil {
		return narrowToContact(ctx, s.contacts, found, party)
	}
	// an email hit on a contact: report it with its company
	company, err := s.partners.FindByID(ctx, *found.ParentID)
	if errors.Is(err, shared.ErrNotFound) {
		return matched(found), nil
	}
	if err != nil {
		return MatchOutcome{}, err
	}
	return matchedContact(company, found), nil
}
