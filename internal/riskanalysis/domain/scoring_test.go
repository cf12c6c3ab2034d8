package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateScoreLowRisk(t *testing.T) {
	cfg := DefaultConfig()
	b := CalculateScore(lowRiskMetrics(), nil, cfg.Weights, cfg.MaterialImpactThreshold)

	// 仅类型多样性贡献监管子分：2 * 4 = 8
	assert.Equal(t, 8, b.Regulatory)
	assert.Equal(t, 0, b.Signal)
	assert.Equal(t, 0, b.Operational)
	assert.Equal(t, 3, b.Total)
	assert.Empty(t, b.CriticalFactors)
}

func TestCalculateScoreMediumRisk(t *testing.T) {
	cfg := DefaultConfig()
	b := CalculateScore(mediumRiskMetrics(), nil, cfg.Weights, cfg.MaterialImpactThreshold)

	assert.Equal(t, 40, b.Regulatory)
	assert.Equal(t, 20, b.Signal)
	assert.Equal(t, 33, b.Operational)
	assert.Equal(t, 31, b.Total)
}

func TestCalculateScoreCriticalMetrics(t *testing.T) {
	cfg := DefaultConfig()
	b := CalculateScore(criticalRiskMetrics(), nil, cfg.Weights, cfg.MaterialImpactThreshold)

	assert.Equal(t, 60, b.Regulatory)
	assert.Equal(t, 65, b.Signal)
	assert.Equal(t, 85, b.Operational)
	assert.Equal(t, 68, b.Total)
	assert.Contains(t, b.CriticalFactors, "elevated operational risk")
}

func TestCalculateScoreWeightedTotalInvariant(t *testing.T) {
	cfg := DefaultConfig()
	for _, m := range []BehavioralMetrics{lowRiskMetrics(), mediumRiskMetrics(), criticalRiskMetrics()} {
		b := CalculateScore(m, nil, cfg.Weights, cfg.MaterialImpactThreshold)
		expected := int(math.Round(float64(b.Regulatory)*cfg.Weights.Regulatory +
			float64(b.Signal)*cfg.Weights.Signal +
			float64(b.Operational)*cfg.Weights.Operational))
		assert.Equal(t, expected, b.Total, "client %s", m.ClientID)
		assert.GreaterOrEqual(t, b.Total, 0)
		assert.LessOrEqual(t, b.Total, 100)
	}
}

func TestCalculateScoreProfileReplacesRegulatory(t *testing.T) {
	cfg := DefaultConfig()
	m := criticalRiskMetrics()
	profile := ClassifyProfile(m)
	require.Equal(t, 90, profile.Score)
	require.Equal(t, ProfileLevelHigh, profile.Level)

	b := CalculateScore(m, &profile, cfg.Weights, cfg.MaterialImpactThreshold)
	assert.Equal(t, profile.Score, b.Regulatory)
	assert.Equal(t, 80, b.Total)
	assert.Contains(t, b.CriticalFactors, "high-risk regulatory profile")
}

func TestCalculateScoreMaterialDrivers(t *testing.T) {
	cfg := DefaultConfig()
	b := CalculateScore(criticalRiskMetrics(), nil, cfg.Weights, cfg.MaterialImpactThreshold)

	require.NotEmpty(t, b.Drivers)
	for _, d := range b.Drivers {
		assert.GreaterOrEqual(t, d.Points, cfg.MaterialImpactThreshold)
		assert.NotEmpty(t, d.Dimension)
		assert.NotEmpty(t, d.Reason)
	}
}

func TestCalculateScoreDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	m := criticalRiskMetrics()
	first := CalculateScore(m, nil, cfg.Weights, cfg.MaterialImpactThreshold)
	second := CalculateScore(m, nil, cfg.Weights, cfg.MaterialImpactThreshold)
	assert.Equal(t, first, second)
}
