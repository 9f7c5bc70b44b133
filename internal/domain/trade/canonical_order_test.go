package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalOrder_DropPlaceholderVAT(t *testing.T) {
	placeholders := []string{"SE1234567801", "12356478", "DK12345678"}

	t.Run("clears a placeholder VAT", func(t *testing.T) {
		order := &CanonicalOrder{Partner: Party{Name: "Buyer", VAT: "DK12345678"}}

		assert.True(t, order.DropPlaceholderVAT(placeholders))
		assert.Empty(t, order.Partner.VAT)
		assert.Equal(t, "Buyer", order.Partner.Name)
	})

	t.Run("keeps a real VAT", func(t *testing.T) {
		order := &CanonicalOrder{Partner: Party{VAT: "BE0477472701"}}

		assert.False(t, order.DropPlaceholderVAT(placeholders))
		assert.Equal(t, "BE0477472701", order.Partner.VAT)
	})

	t.Run("no VAT is a no-op", func(t *testing.T) {
		order := &CanonicalOrder{}
		assert.False(t, order.DropPlaceholderVAT(placeholders))
	})
}

func TestCanonicalOrder_Currency(t *testing.T) {
	order := &CanonicalOrder{}
	_, ok := order.Currency()
	assert.False(t, ok)

	eur := "EUR"
	order.CurrencyISOCode = &eur
	code, ok := order.Currency()
	assert.True(t, ok)
	assert.Equal(t, "EUR", code)
}

func TestCanonicalOrder_TotalUntaxed(t *testing.T) {
	order := &CanonicalOrder{Lines: []OrderLine{
		{Quantity: decimal.NewFromInt(2), PriceUnit: decimal.RequireFromString("10.5")},
		{Quantity: decimal.RequireFromString("0.5"), PriceUnit: decimal.NewFromInt(4)},
	}}

	assert.True(t, decimal.NewFromInt(23).Equal(order.TotalUntaxed()))
}

func TestPartyIdentifier_HasScheme(t *testing.T) {
	assert.True(t, PartyIdentifier{SchemeID: "0088"}.HasScheme())
	assert.True(t, PartyIdentifier{SchemeID: "  "}.HasScheme())
	assert.False(t, PartyIdentifier{}.HasScheme())
}

func TestParty_SchemeIDs(t *testing.T) {
	p := &Party{IDNumbers: []PartyIdentifier{
		{SchemeID: "0088", Value: "5400000000001"},
		{SchemeID: "", Value: "no-scheme"},
		{SchemeID: "BE:VAT", Value: "BE123"},
		{SchemeID: "0088", Value: "5400000000002"},
	}}

	assert.Equal(t, []string{"0088", "BE:VAT"}, p.SchemeIDs())
	assert.Nil(t, (*Party)(nil).SchemeIDs())
}

func TestParty_OfficialReferences(t *testing.T) {
	p := &Party{Name: "Supplier", VAT: "FR12345678901", Email: "sales@example.com"}

	ref := p.OfficialReferences()
	assert.Equal(t, Party{VAT: "FR12345678901"}, ref)
}

func TestParty_IsEmpty(t *testing.T) {
	assert.True(t, (*Party)(nil).IsEmpty())
	assert.True(t, (&Party{Address: &Address{}}).IsEmpty())
	assert.False(t, (&Party{Address: &Address{City: "Lyon"}}).IsEmpty())
	assert.False(t, (&Party{IDNumbers: []PartyIdentifier{{Value: "x"}}}).IsEmpty())
}
