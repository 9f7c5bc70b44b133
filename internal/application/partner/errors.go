package partner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/domain/trade"
)

// ErrNotApplicable is returned by a strategy that has nothing to work with,
// so the next strategy in the chain gets its turn
var ErrNotApplicable = errors.New("partner: strategy not applicable")

// ErrPartnerNotFound is returned when no strategy resolves the party
var ErrPartnerNotFound = shared.NewDomainError("PARTNER_NOT_FOUND", "No partner matches the document party")

const unmatchedHeader = "couldn't find a partner corresponding to the following information extracted from the business document:\n"

// UnmatchedPartnerError lists every identifier of a party that failed to
// resolve, so all of them can be checked at once
type UnmatchedPartnerError struct {
	Party     trade.Party
	Unmatched []trade.PartyIdentifier
}

// Error implements the error interface
func (e *UnmatchedPartnerError) Error() string {
	entries := make([]string, len(e.Unmatched))
	for i, id := range e.Unmatched {
		entries[i] = fmt.Sprintf("ID Number: %s\nID Number Category: %s\n\n", id.Value, id.SchemeID)
	}
	return unmatchedHeader + strings.Join(entries, "or\n")
}
