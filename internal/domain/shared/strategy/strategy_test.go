package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategyType_IsValid(t *testing.T) {
	for _, st := range []StrategyType{StrategyTypePartnerMatch, StrategyTypeDocumentImport} {
		assert.True(t, st.IsValid(), st.String())
	}
	assert.False(t, StrategyType("pricing").IsValid())
}

func TestBaseStrategy(t *testing.T) {
	s := NewBaseStrategy("identifier", StrategyTypePartnerMatch, "match by identifier")

	assert.Equal(t, "identifier", s.Name())
	assert.Equal(t, StrategyTypePartnerMatch, s.Type())
	assert.Equal(t, "match by identifier", s.Description())

	var _ Strategy = s
}
