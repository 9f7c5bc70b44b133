package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/domain/shared/strategy"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchStrategy is one link of the partner matching chain
type MatchStrategy interface {
	strategy.Strategy
	// Match resolves the party. Returns ErrNotApplicable when the party
	// carries nothing this strategy can use.
	Match(ctx context.Context, party trade.Party) (MatchOutcome, error)
}

// IdentifierStrategy resolves a party through its scheme-qualified
// identifiers (registry numbers, GLNs, national company IDs)
type IdentifierStrategy struct {
	strategy.BaseStrategy
	identifiers partner.IdentifierDirectory
	partners    partner.PartnerDirectory
	contacts    ContactMatcher
	logger      *zap.Logger
}

// NewIdentifierStrategy creates an IdentifierStrategy
func NewIdentifierStrategy(
	identifiers partner.IdentifierDirectory,
	partners partner.PartnerDirectory,
	contacts ContactMatcher,
	logger *zap.Logger,
) *IdentifierStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentifierStrategy{
		BaseStrategy: strategy.NewBaseStrategy("identifier",
			strategy.StrategyTypePartnerMatch,
			"Match on scheme-qualified identification numbers"),
		identifiers: identifiers,
		partners:    partners,
		contacts:    contacts,
		logger:      logger,
	}
}

// Match implements MatchStrategy.
//
// Identifiers are tried in document order and the first active identifier
// found wins. Identifiers whose scheme is not a known category are skipped.
// When at least one known-scheme identifier was tried and none hit, the
// outcome is OutcomeUnmatched listing every miss.
func (s *IdentifierStrategy) Match(ctx context.Context, party trade.Party) (MatchOutcome, error) {
	schemes := party.SchemeIDs()
	if len(schemes) == 0 {
		return MatchOutcome{}, ErrNotApplicable
	}

	categories, err := s.identifiers.FindCategoriesByCode(ctx, schemes)
	if err != nil {
		return MatchOutcome{}, fmt.Errorf("find identifier categories: %w", err)
	}
	byCode := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		byCode[c.Code] = c.ID
	}

	var unmatched []trade.PartyIdentifier
	for _, id := range party.IDNumbers {
		categoryID, known := byCode[id.SchemeID]
		if !id.HasScheme() || !known {
			s.logger.Debug("Skipping identifier with unknown scheme",
				zap.String("scheme", id.SchemeID),
				zap.String("value", id.Value),
			)
			continue
		}

		number, err := s.identifiers.FindActiveIdentifier(ctx, categoryID, id.Value)
		if errors.Is(err, shared.ErrNotFound) {
			unmatched = append(unmatched, id)
			continue
		}
		if err != nil {
			return MatchOutcome{}, fmt.Errorf("find identifier %s/%s: %w", id.SchemeID, id.Value, err)
		}

		return s.resolveOwner(ctx, number, party)
	}

	if len(unmatched) == 0 {
		return MatchOutcome{}, ErrNotApplicable
	}
	return MatchOutcome{Kind: OutcomeUnmatched, Unmatched: unmatched}, nil
}

func (s *IdentifierStrategy) resolveOwner(ctx context.Context, number *partner.IdentifierNumber, party trade.Party) (MatchOutcome, error) {
	owner, err := s.partners.FindByID(ctx, number.PartnerID)
	if err != nil {
		return MatchOutcome{}, fmt.Errorf("load owner of identifier %s: %w", number.ID, err)
	}
	return narrowToContact(ctx, s.contacts, owner, party)
}

// narrowToContact returns the matching contact of p when there is one,
// otherwise p itself
func narrowToContact(ctx context.Context, contacts ContactMatcher, p *partner.Partner, party trade.Party) (MatchOutcome, error) {
	if contacts == nil {
		return matched(p), nil
	}
	contact, err := contacts.FindContact(ctx, p, party)
	if err != nil {
		return MatchOutcome{}, fmt.Errorf("find contact of partner %s: %w", p.ID, err)
	}
	if contact != nil {
		return matchedContact(p, contact), nil
	}
	return matched(p), nil
}
