package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMatcher_Match(t *testing.T) {
	ctx := mock.Anything
	acme := newTestCompany("Acme", "BE0123456789")
	vat := newTestCategory("vat")

	t.Run("identifier strategy defers to generic matching", func(t *testing.T) {
		ids := new(MockIdentifierDirectory)
		partners := new(MockPartnerDirectory)
		partners.On("FindByName", ctx, "Acme").Return(acme, nil)

		m := NewDirectoryMatcher(ids, partners)
		outcome, err := m.Match(context.Background(), trade.Party{Name: "Acme"})

		require.NoError(t, err)
		assert.Equal(t, OutcomeMatched, outcome.Kind)
		assert.Equal(t, "generic", outcome.Strategy)
		assert.Equal(t, []string{"identifier", "generic"}, m.Strategies())
	})

	t.Run("unmatched identifiers are terminal", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		ids := new(MockIdentifierDirectory)
		partners := new(MockPartnerDirectory)
		party := trade.Party{Name: "Acme", IDNumbers: []trade.PartyIdentifier{
			{SchemeID: "unknown", Value: "X1"},
			{SchemeID: "vat", Value: "BE999"},
		}}
		ids.On("FindCategoriesByCode", ctx, []string{"unknown", "vat"}).Return([]partner.IdentifierCategory{*vat}, nil)
		ids.On("FindActiveIdentifier", ctx, vat.ID, "BE999").Return(nil, shared.ErrNotFound)

		outcome, err := NewDirectoryMatcher(ids, partners, WithLogger(zap.New(core))).Match(context.Background(), party)

		var unmatched *UnmatchedPartnerError
		require.ErrorAs(t, err, &unmatched)
		assert.Equal(t, []trade.PartyIdentifier{{SchemeID: "vat", Value: "BE999"}}, unmatched.Unmatched)
		assert.Equal(t, OutcomeUnmatched, outcome.Kind)
		assert.Equal(t, "identifier", outcome.Strategy)
		partners.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
		assert.Equal(t, 1, logs.FilterMessage("No partner matches the document identifiers").Len())
	})

	t.Run("all identifiers unknown falls through", func(t *testing.T) {
		ids := new(MockIdentifierDirectory)
		partners := new(MockPartnerDirectory)
		party := trade.Party{VAT: "BE0123456789", IDNumbers: []trade.PartyIdentifier{{SchemeID: "XX", Value: "1"}}}
		ids.On("FindCategoriesByCode", ctx, []string{"XX"}).Return([]partner.IdentifierCategory{}, nil)
		partners.On("FindCompanyByVAT", ctx, "BE0123456789").Return(acme, nil)

		outcome, err := NewDirectoryMatcher(ids, partners).Match(context.Background(), party)

		require.NoError(t, err)
		assert.Equal(t, acme.ID, outcome.PartnerID())
	})

	t.Run("blank scheme is still a scheme", func(t *testing.T) {
		ids := new(MockIdentifierDirectory)
		partners := new(MockPartnerDirectory)
		party := trade.Party{Name: "Acme", IDNumbers: []trade.PartyIdentifier{{SchemeID: "  ", Value: "1"}}}
		ids.On("FindCategoriesByCode", ctx, []string{"  "}).Return([]partner.IdentifierCategory{}, nil)
		partners.On("FindByName", ctx, "Acme").Return(acme, nil)

		outcome, err := NewDirectoryMatcher(ids, partners).Match(context.Background(), party)

		require.NoError(t, err)
		assert.Equal(t, "generic", outcome.Strategy)
		ids.AssertExpectations(t)
	})

	t.Run("no strategy applies", func(t *testing.T) {
		_, err := NewDirectoryMatcher(new(MockIdentifierDirectory), new(MockPartnerDirectory)).
			Match(context.Background(), trade.Party{})

		assert.ErrorIs(t, err, ErrPartnerNotFound)
	})

	t.Run("strategy errors stop the chain", func(t *testing.T) {
		ids := new(MockIdentifierDirectory)
		partners := new(MockPartnerDirectory)
		boom := errors.New("db down")
		ids.On("FindCategoriesByCode", ctx, mock.Anything).Return(nil, boom)

		_, err := NewDirectoryMatcher(ids, partners).Match(context.Background(), trade.Party{
			Name: "Acme", IDNumbers: []trade.PartyIdentifier{{SchemeID: "vat", Value: "BE1"}},
		})

		assert.ErrorIs(t, err, boom)
		partners.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})
}

func TestUnmatchedPartnerError_Error(t *testing.T) {
	err := &UnmatchedPartnerError{Unmatched: []trade.PartyIdentifier{
		{SchemeID: "vat", Value: "BE999"},
		{SchemeID: "0088", Value: "5790000000002"},
	}}

	want := "couldn't find a partner corresponding to the following information extracted from the business document:\n" +
		"ID Number: BE999\nID Number Category: vat\n\n" +
		"or\n" +
		"ID Number: 5790000000002\nID Number Category: 0088\n\n"
	assert.Equal(t, want, err.Error())

	single := &UnmatchedPartnerError{Unmatched: []trade.PartyIdentifier{{SchemeID: "vat", Value: "BE1"}}}
	assert.NotContains(t, single.Error(), "or\n")
}

func TestMatchOutcome(t *testing.T) {
	var empty MatchOutcome
	assert.False(t, empty.IsMatch())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", empty.PartnerID().String())

	acme := newTestCompany("Acme", "")
	assert.True(t, matched(acme).IsMatch())
	assert.Equal(t, acme.ID, matched(acme).CompanyID())
}
