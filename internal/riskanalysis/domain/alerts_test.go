package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAlertsQuietClient(t *testing.T) {
	alerts := GenerateAlerts(lowRiskMetrics(), 3, RiskLevelLow, testTime)
	assert.Empty(t, alerts)
}

func TestGenerateAlertsCriticalClient(t *testing.T) {
	m := criticalRiskMetrics()
	alerts := GenerateAlerts(m, 80, RiskLevelCritical, testTime)

	// 大额、票均、分拆、拒绝率、笔数、类型多样性、Critical 等级共七条
	require.Len(t, alerts, 7)

	for i := 1; i < len(alerts); i++ {
		assert.GreaterOrEqual(t, alerts[i-1].Priority.Rank(), alerts[i].Priority.Rank(), "alerts must be sorted by priority")
	}
	assert.Equal(t, AlertPriorityCritical, alerts[0].Priority)

	seen := make(map[string]bool, len(alerts))
	for _, a := range alerts {
		key := string(a.Type) + "|" + a.Title
		assert.False(t, seen[key], "duplicate alert %s", key)
		seen[key] = true
		assert.Equal(t, m.ClientID, a.ClientID)
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.RequiredAction)
		assert.Equal(t, testTime.AddDate(0, 0, a.DeadlineDays), a.Deadline)
	}
}

func TestGenerateAlertsSelfDescribing(t *testing.T) {
	m := criticalRiskMetrics()
	alerts := GenerateAlerts(m, 80, RiskLevelCritical, testTime)

	byTitle := make(map[string]Alert, len(alerts))
	for _, a := range alerts {
		byTitle[a.Title] = a
	}

	frag, ok := byTitle["possible structuring pattern"]
	require.True(t, ok)
	assert.Equal(t, float64(m.FragmentedDays), frag.DetectedValue)
	assert.Equal(t, 2.0, frag.Threshold)
	assert.Equal(t, "investigate the fragmentation pattern and file a report if confirmed", frag.RequiredAction)

	vol, ok := byTitle["unusually large transaction volume"]
	require.True(t, ok)
	assert.Equal(t, 1_200_000_000.0, vol.DetectedValue)
	assert.Equal(t, 1_000_000_000.0, vol.Threshold)

	score, ok := byTitle["critical risk classification"]
	require.True(t, ok)
	assert.Equal(t, 80.0, score.DetectedValue)
	assert.Equal(t, 75.0, score.Threshold)
	assert.Equal(t, "suspend operations and open an immediate investigation", score.RequiredAction)
}

func TestGenerateAlertsEscalationAtCriticalLevel(t *testing.T) {
	m := lowRiskMetrics()
	m.TransactionCount = 1500

	normal := GenerateAlerts(m, 60, RiskLevelHigh, testTime)
	require.Len(t, normal, 1)
	assert.Equal(t, AlertPriorityMedium, normal[0].Priority)

	escalated := GenerateAlerts(m, 80, RiskLevelCritical, testTime)
	var found bool
	for _, a := range escalated {
		if a.Title == "very high transaction count" {
			found = true
			assert.Equal(t, AlertPriorityHigh, a.Priority)
		}
	}
	assert.True(t, found)
}

func TestGenerateAlertsCriticalLevelFilingAlert(t *testing.T) {
	alerts := GenerateAlerts(lowRiskMetrics(), 78, RiskLevelCritical, testTime)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, AlertTypeCompliance, a.Type)
	assert.Equal(t, AlertPriorityCritical, a.Priority)
	assert.Equal(t, 78.0, a.DetectedValue)
	assert.True(t, a.RequiresFiling)
	assert.Equal(t, 1, a.DeadlineDays)
}

func TestGenerateAlertsStableIDs(t *testing.T) {
	m := criticalRiskMetrics()
	first := GenerateAlerts(m, 80, RiskLevelCritical, testTime)
	second := GenerateAlerts(m, 80, RiskLevelCritical, testTime)
	require.Equal(t, first, second)

	other := m
	other.ClientID = "CLI-OTHER"
	different := GenerateAlerts(other, 80, RiskLevelCritical, testTime)
	require.Len(t, different, len(first))
	for i := range first {
		assert.NotEqual(t, first[i].ID, different[i].ID, "ids must vary by client")
	}
}
