package models

import (
	"testing"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerModel_RoundTrip(t *testing.T) {
	company, err := partner.NewCompany("Johnssons byggvaror", "SE 5560.123456-01")
	require.NoError(t, err)
	contact, err := partner.NewContact(company, "Gunnar Johnsson", "Gunnar@Johnssons.example")
	require.NoError(t, err)

	got := PartnerModelFromDomain(contact).ToDomain()
	assert.Equal(t, contact, got)
	assert.True(t, got.IsContactOf(company.ID))

	assert.Equal(t, "partners", PartnerModel{}.TableName())
}

func TestIdentifierModels_RoundTrip(t *testing.T) {
	company, err := partner.NewCompany("Johnssons byggvaror", "")
	require.NoError(t, err)
	category, err := partner.NewIdentifierCategory("0088", "GLN")
	require.NoError(t, err)
	number, err := partner.NewIdentifierNumber(category, company.ID, "7300010000001")
	require.NoError(t, err)

	assert.Equal(t, category, IdentifierCategoryModelFromDomain(category).ToDomain())
	assert.Equal(t, number, IdentifierNumberModelFromDomain(number).ToDomain())
	assert.Equal(t, partner.IdentifierStatusOpen, IdentifierNumberModelFromDomain(number).Status)
}
