package partner

import (
	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/google/uuid"
)

// OutcomeKind tells how a document party was resolved
type OutcomeKind string

const (
	// OutcomeMatched resolved to a partner
	OutcomeMatched OutcomeKind = "matched"
	// OutcomeMatchedContact resolved to a contact of the matched partner
	OutcomeMatchedContact OutcomeKind = "matched_contact"
	// OutcomeUnmatched means every identifier tried missed
	OutcomeUnmatched OutcomeKind = "unmatched"
)

// MatchOutcome is the result of resolving a document party
type MatchOutcome struct {
	Kind OutcomeKind
	// Partner is the matched partner, or the contact for OutcomeMatchedContact
	Partner *partner.Partner
	// Company is the partner owning the contact for OutcomeMatchedContact
	Company *partner.Partner
	// Unmatched lists the identifiers that missed for OutcomeUnmatched
	Unmatched []trade.PartyIdentifier
	// Strategy names the strategy that produced the outcome
	Strategy string
}

func matched(p *partner.Partner) MatchOutcome {
	return MatchOutcome{Kind: OutcomeMatched, Partner: p}
}

func matchedContact(company, contact *partner.Partner) MatchOutcome {
	return MatchOutcome{Kind: OutcomeMatchedContact, Partner: contact, Company: company}
}

// IsMatch reports whether a partner or contact was found
func (o MatchOutcome) IsMatch() bool {
	return o.Kind == OutcomeMatched || o.Kind == OutcomeMatchedContact
}

// PartnerID returns the ID of the resolved partner or contact
func (o MatchOutcome) PartnerID() uuid.UUID {
	if o.Partner == nil {
		return uuid.Nil
	}
	return o.Partner.ID
}

// CompanyID returns the ID of the company behind the match: the contact's
// parent for a contact match, the partner itself otherwise
func (o MatchOutcome) CompanyID() uuid.UUID {
	if o.Company != nil {
		return o.Company.ID
	}
	return o.PartnerID()
}
