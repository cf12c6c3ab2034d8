package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagByName(t *testing.T, flags []RiskFlag, name FlagName) RiskFlag {
	t.Helper()
	for _, f := range flags {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %s not found", name)
	return RiskFlag{}
}

func TestEvaluateFlagsReturnsFullCatalog(t *testing.T) {
	flags := EvaluateFlags(lowRiskMetrics())
	require.Len(t, flags, 11)

	seen := make(map[FlagName]bool, len(flags))
	for _, f := range flags {
		assert.False(t, seen[f.Name], "duplicate flag %s", f.Name)
		seen[f.Name] = true
	}
	assert.Empty(t, TriggeredFlags(flags))
}

func TestEvaluateFlagsCriticalClient(t *testing.T) {
	flags := EvaluateFlags(criticalRiskMetrics())

	triggered := TriggeredFlags(flags)
	assert.Len(t, triggered, 11)

	frag := flagByName(t, flags, FlagFragmentation)
	assert.Equal(t, SeverityCritical, frag.Severity)
	assert.Equal(t, 30, frag.Points)
}

func TestEvaluateFlagsHighValueUpgrade(t *testing.T) {
	m := lowRiskMetrics()

	m.HighValueCount = 7
	f := flagByName(t, EvaluateFlags(m), FlagHighValueTransactions)
	require.True(t, f.Triggered)
	assert.Equal(t, SeverityMedium, f.Severity)
	assert.Equal(t, 15, f.Points)

	m.HighValueCount = 12
	f = flagByName(t, EvaluateFlags(m), FlagHighValueTransactions)
	require.True(t, f.Triggered)
	assert.Equal(t, SeverityHigh, f.Severity)
	assert.Equal(t, 25, f.Points)
}

func TestEvaluateFlagsDiversityInclusiveThreshold(t *testing.T) {
	m := lowRiskMetrics()

	m.TypeDiversity = 5
	assert.False(t, flagByName(t, EvaluateFlags(m), FlagHighTypeDiversity).Triggered)

	m.TypeDiversity = 6
	assert.True(t, flagByName(t, EvaluateFlags(m), FlagHighTypeDiversity).Triggered)
}

func TestEvaluateFlagsDeterministic(t *testing.T) {
	m := criticalRiskMetrics()
	assert.Equal(t, EvaluateFlags(m), EvaluateFlags(m))
}
