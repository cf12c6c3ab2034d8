package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return engine
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Regulatory = 0.9
	_, err := NewEngine(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAnalyzeRejectsInvalidMetrics(t *testing.T) {
	engine := newTestEngine(t)

	m := lowRiskMetrics()
	m.ClientID = ""
	_, err := engine.Analyze(m, nil, testTime)
	assert.ErrorIs(t, err, ErrInvalidMetrics)

	m = lowRiskMetrics()
	m.RejectionRate = 1.5
	_, err = engine.Analyze(m, nil, testTime)
	assert.ErrorIs(t, err, ErrInvalidMetrics)
}

func TestAnalyzeLowRiskClient(t *testing.T) {
	engine := newTestEngine(t)

	a, err := engine.Analyze(lowRiskMetrics(), nil, testTime)
	require.NoError(t, err)

	assert.Equal(t, "CLI-001", a.ClientID)
	assert.Equal(t, RiskLevelLow, a.Level)
	assert.Equal(t, 3, a.Score.Total)
	assert.Empty(t, a.Alerts)
	assert.Empty(t, TriggeredFlags(a.Flags))
	assert.False(t, a.EnhancedDueDiligence)
	assert.False(t, a.Escalation)
	assert.Equal(t, testTime.AddDate(0, 0, 90), a.NextReview)
	assert.NotEmpty(t, a.Recommendations)
}

func TestAnalyzeMediumRiskClient(t *testing.T) {
	engine := newTestEngine(t)

	a, err := engine.Analyze(mediumRiskMetrics(), nil, testTime)
	require.NoError(t, err)

	assert.Equal(t, RiskLevelMedium, a.Level)
	assert.Equal(t, 31, a.Score.Total)
	assert.Empty(t, a.Alerts)
	assert.False(t, a.EnhancedDueDiligence)
	assert.Equal(t, testTime.AddDate(0, 0, 30), a.NextReview)
}

func TestAnalyzeCriticalClientWithProfile(t *testing.T) {
	engine := newTestEngine(t)

	m := criticalRiskMetrics()
	profile := ClassifyProfile(m)
	a, err := engine.Analyze(m, &profile, testTime)
	require.NoError(t, err)

	assert.Equal(t, RiskLevelCritical, a.Level)
	assert.Equal(t, 80, a.Score.Total)
	assert.Len(t, a.Alerts, 7)
	assert.True(t, a.EnhancedDueDiligence)
	assert.True(t, a.Escalation)
	assert.Equal(t, testTime.AddDate(0, 0, 7), a.NextReview)
	assert.Equal(t, RiskLevelCritical, a.Matrix.InherentLevel)
	assert.False(t, a.Matrix.ResidualLevel.Above(RiskLevelCritical))
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)

	m := criticalRiskMetrics()
	first, err := engine.Analyze(m, nil, testTime)
	require.NoError(t, err)
	second, err := engine.Analyze(m, nil, testTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRequiresEscalationOnFilingAlert(t *testing.T) {
	alerts := []Alert{{Priority: AlertPriorityCritical, RequiresFiling: true}}
	assert.True(t, RequiresEscalation(RiskLevelMedium, alerts))
	assert.False(t, RequiresEscalation(RiskLevelMedium, []Alert{{Priority: AlertPriorityCritical}}))
	assert.False(t, RequiresEscalation(RiskLevelHigh, nil))
	assert.True(t, RequiresEscalation(RiskLevelCritical, nil))
}

func TestRecommendationsCoverAllLevels(t *testing.T) {
	for _, level := range AllRiskLevels() {
		assert.NotEmpty(t, RecommendationsFor(level), "level %s", level)
	}
	assert.True(t, RequiresEnhancedDueDiligence(RiskLevelHigh))
	assert.True(t, RequiresEnhancedDueDiligence(RiskLevelCritical))
	assert.False(t, RequiresEnhancedDueDiligence(RiskLevelMedium))
}
