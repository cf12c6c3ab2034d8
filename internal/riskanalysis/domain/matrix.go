package domain

import "math"

// 标准缓释控制名
const (
	ControlContinuousMonitoring   = "continuous monitoring"
	ControlCounterpartyValidation = "counterparty validation"
	ControlPatternAnalysis        = "pattern analysis"
	ControlAutomatedAlerting      = "automated alerting"
	ControlEnhancedDueDiligence   = "enhanced due diligence"
)

// inherentMidpoint 固有等级在给定分段下的代表分值（区间中点），用于残余风险折算。
// 默认分段 30/50/75 下依次为 15/40/63/88。
func inherentMidpoint(level RiskLevel, b Bands) int {
	var lower, upper int
	switch level {
	case RiskLevelLow:
		lower, upper = 0, b.LowMax
	case RiskLevelMedium:
		lower, upper = b.LowMax, b.MediumMax
	case RiskLevelHigh:
		lower, upper = b.MediumMax, b.HighMax
	default:
		lower, upper = b.HighMax, 100
	}
	return int(math.Round(float64(lower+upper) / 2))
}

// expectedControls 各固有等级应具备的控制集合
var expectedControls = map[RiskLevel][]string{
	RiskLevelLow: {
		ControlContinuousMonitoring,
	},
	RiskLevelMedium: {
		ControlContinuousMonitoring,
		ControlPatternAnalysis,
	},
	RiskLevelHigh: {
		ControlContinuousMonitoring,
		ControlPatternAnalysis,
		ControlCounterpartyValidation,
		ControlAutomatedAlerting,
		ControlEnhancedDueDiligence,
	},
	RiskLevelCritical: {
		ControlContinuousMonitoring,
		ControlPatternAnalysis,
		ControlCounterpartyValidation,
		ControlAutomatedAlerting,
		ControlEnhancedDueDiligence,
	},
}

// ControlGap 控制缺口：控制缺失或有效性不达标
type ControlGap struct {
	Control string `json:"control"`
	Reason  string `json:"reason"`
}

// RiskMatrix 固有/残余风险对照结果
type RiskMatrix struct {
	InherentLevel     RiskLevel       `json:"inherent_level"`
	InherentScore     int             `json:"inherent_score"`
	ResidualLevel     RiskLevel       `json:"residual_level"`
	ResidualScore     int             `json:"residual_score"`
	MeanEffectiveness float64         `json:"mean_effectiveness"`
	Controls          []ControlConfig `json:"controls"`
	Gaps              []ControlGap    `json:"gaps"`
	WithinAppetite    bool            `json:"within_appetite"`
}

// BuildMatrix 由固有等级与已配置控制推导残余风险。
// 残余分 = 等级代表分 × (1 - 控制有效性均值)，再按同一分段重新分类；
// 残余等级不会高于固有等级。缺口包含缺失控制与有效性低于下限的控制。
func BuildMatrix(inherent RiskLevel, cfg Config) (RiskMatrix, error) {
	mid := inherentMidpoint(inherent, cfg.Bands)

	mean := 0.0
	if len(cfg.Controls) > 0 {
		sum := 0.0
		for _, c := range cfg.Controls {
			sum += c.Effectiveness
		}
		mean = sum / float64(len(cfg.Controls))
	}

	residualScore := int(math.Round(float64(mid) * (1 - mean)))
	if residualScore < 0 {
		residualScore = 0
	}
	residualLevel, err := ClassifyScore(residualScore, cfg.Bands)
	if err != nil {
		return RiskMatrix{}, err
	}
	if residualLevel.Above(inherent) {
		residualLevel = inherent
	}

	configured := make(map[string]float64, len(cfg.Controls))
	for _, c := range cfg.Controls {
		configured[c.Name] = c.Effectiveness
	}
	var gaps []ControlGap
	for _, name := range expectedControls[inherent] {
		eff, ok := configured[name]
		switch {
		case !ok:
			gaps = append(gaps, ControlGap{Control: name, Reason: "control not implemented"})
		case eff < cfg.ControlMinEffectiveness:
			gaps = append(gaps, ControlGap{Control: name, Reason: "effectiveness below minimum"})
		}
	}

	return RiskMatrix{
		InherentLevel:     inherent,
		InherentScore:     mid,
		ResidualLevel:     residualLevel,
		ResidualScore:     residualScore,
		MeanEffectiveness: mean,
		Controls:          cfg.Controls,
		Gaps:              gaps,
		WithinAppetite:    !residualLevel.Above(cfg.RiskAppetite),
	}, nil
}
