package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyScoreBoundaries(t *testing.T) {
	bands := DefaultConfig().Bands

	cases := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLevelLow},
		{30, RiskLevelLow},
		{31, RiskLevelMedium},
		{50, RiskLevelMedium},
		{51, RiskLevelHigh},
		{75, RiskLevelHigh},
		{76, RiskLevelCritical},
		{100, RiskLevelCritical},
	}
	for _, tc := range cases {
		level, err := ClassifyScore(tc.score, bands)
		require.NoError(t, err)
		assert.Equal(t, tc.want, level, "score %d", tc.score)
	}
}

func TestClassifyScoreOutOfRange(t *testing.T) {
	bands := DefaultConfig().Bands

	for _, score := range []int{-1, 101, 1000} {
		_, err := ClassifyScore(score, bands)
		assert.ErrorIs(t, err, ErrScoreOutOfRange, "score %d", score)
	}
}

func TestBandsValidate(t *testing.T) {
	assert.NoError(t, Bands{LowMax: 30, MediumMax: 50, HighMax: 75}.Validate())

	bad := []Bands{
		{LowMax: 0, MediumMax: 50, HighMax: 75},
		{LowMax: 50, MediumMax: 30, HighMax: 75},
		{LowMax: 30, MediumMax: 75, HighMax: 75},
		{LowMax: 30, MediumMax: 50, HighMax: 100},
	}
	for _, b := range bad {
		assert.ErrorIs(t, b.Validate(), ErrInvalidConfig, "%+v", b)
	}
}

func TestRiskLevelOrdering(t *testing.T) {
	levels := AllRiskLevels()
	require.Len(t, levels, 4)
	for i := 1; i < len(levels); i++ {
		assert.True(t, levels[i].Above(levels[i-1]))
	}
	assert.False(t, RiskLevelLow.Above(RiskLevelCritical))
	assert.True(t, RiskLevelCritical.Valid())
	assert.False(t, RiskLevel("UNKNOWN").Valid())
}
