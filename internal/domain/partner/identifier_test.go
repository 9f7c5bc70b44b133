package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/docimport/internal/domain/shared"
)

func TestNewIdentifierCategory(t *testing.T) {
	c, err := NewIdentifierCategory("0088", "")
	require.NoError(t, err)
	assert.Equal(t, "0088", c.Code)
	assert.Equal(t, "0088", c.Name)

	_, err = NewIdentifierCategory(" ", "GLN")
	assert.Error(t, err)
}

func TestNewIdentifierNumber(t *testing.T) {
	category, err := NewIdentifierCategory("0088", "GLN")
	require.NoError(t, err)
	partnerID := uuid.New()

	t.Run("creates open identifier", func(t *testing.T) {
		n, err := NewIdentifierNumber(category, partnerID, " 5400000000001 ")
		require.NoError(t, err)

		assert.Equal(t, category.ID, n.CategoryID)
		assert.Equal(t, partnerID, n.PartnerID)
		assert.Equal(t, "5400000000001", n.Value)
		assert.Equal(t, IdentifierStatusOpen, n.Status)
		assert.True(t, n.IsActive())
	})

	t.Run("validates input", func(t *testing.T) {
		_, err := NewIdentifierNumber(nil, partnerID, "x")
		assert.Error(t, err)
		_, err = NewIdentifierNumber(category, partnerID, "")
		assert.Error(t, err)
		_, err = NewIdentifierNumber(category, uuid.Nil, "x")
		assert.Error(t, err)
	})
}

func TestIdentifierNumber_Close(t *testing.T) {
	category, _ := NewIdentifierCategory("0088", "GLN")
	n, err := NewIdentifierNumber(category, uuid.New(), "5400000000001")
	require.NoError(t, err)

	require.NoError(t, n.Close())
	assert.False(t, n.IsActive())
	assert.ErrorIs(t, n.Close(), shared.ErrInvalidState)
}

func TestIdentifierStatus_IsValid(t *testing.T) {
	for _, s := range []IdentifierStatus{IdentifierStatusDraft, IdentifierStatusOpen, IdentifierStatusPending, IdentifierStatusClose} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, IdentifierStatus("archived").IsValid())
}
