package domain

import (
	"fmt"
	"math"
)

// 默认配置常量
const (
	DefaultMaterialImpactThreshold = 15
	DefaultControlMinEffectiveness = 0.5
	weightTolerance                = 1e-9
)

// Weights 三个子分的加权系数，必须合计为 1.0
type Weights struct {
	Regulatory  float64 `json:"regulatory"  mapstructure:"regulatory"`
	Signal      float64 `json:"signal"      mapstructure:"signal"`
	Operational float64 `json:"operational" mapstructure:"operational"`
}

// Validate 校验权重区间与总和
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"regulatory":  w.Regulatory,
		"signal":      w.Signal,
		"operational": w.Operational,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: weight %s=%v outside [0,1]", ErrInvalidConfig, name, v)
		}
	}
	if sum := w.Regulatory + w.Signal + w.Operational; math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, expected 1.0", ErrInvalidConfig, sum)
	}
	return nil
}

// ControlConfig 单个缓释控制及其有效性系数
type ControlConfig struct {
	Name          string  `json:"name"          mapstructure:"name"`
	Effectiveness float64 `json:"effectiveness" mapstructure:"effectiveness"`
}

// Config 风险引擎配置。
// 所有项均有文档化默认值，加载时整体校验，避免坏配置静默扭曲评分。
type Config struct {
	Weights                 Weights           `json:"weights"                   mapstructure:"weights"`
	Bands                   Bands             `json:"bands"                     mapstructure:"bands"`
	ReviewIntervalDays      map[RiskLevel]int `json:"review_interval_days"      mapstructure:"review_interval_days"`
	MaterialImpactThreshold int               `json:"material_impact_threshold" mapstructure:"material_impact_threshold"`
	ControlMinEffectiveness float64           `json:"control_min_effectiveness" mapstructure:"control_min_effectiveness"`
	RiskAppetite            RiskLevel         `json:"risk_appetite"             mapstructure:"risk_appetite"`
	Controls                []ControlConfig   `json:"controls"                  mapstructure:"controls"`
}

// DefaultConfig 返回默认引擎配置
func DefaultConfig() Config {
	return Config{
		Weights: Weights{Regulatory: 0.40, Signal: 0.35, Operational: 0.25},
		Bands:   Bands{LowMax: 30, MediumMax: 50, HighMax: 75},
		ReviewIntervalDays: map[RiskLevel]int{
			RiskLevelCritical: 7,
			RiskLevelHigh:     15,
			RiskLevelMedium:   30,
			RiskLevelLow:      90,
		},
		MaterialImpactThreshold: DefaultMaterialImpactThreshold,
		ControlMinEffectiveness: DefaultControlMinEffectiveness,
		RiskAppetite:            RiskLevelMedium,
		Controls: []ControlConfig{
			{Name: ControlContinuousMonitoring, Effectiveness: 0.35},
			{Name: ControlCounterpartyValidation, Effectiveness: 0.30},
			{Name: ControlPatternAnalysis, Effectiveness: 0.25},
			{Name: ControlAutomatedAlerting, Effectiveness: 0.30},
		},
	}
}

// Validate 在任何客户被分析之前整体校验配置
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Bands.Validate(); err != nil {
		return err
	}
	for _, level := range AllRiskLevels() {
		days, ok := c.ReviewIntervalDays[level]
		if !ok {
			return fmt.Errorf("%w: missing review interval for level %s", ErrInvalidConfig, level)
		}
		if days <= 0 {
			return fmt.Errorf("%w: review interval for level %s must be positive, got %d", ErrInvalidConfig, level, days)
		}
	}
	if c.MaterialImpactThreshold <= 0 {
		return fmt.Errorf("%w: material impact threshold must be positive, got %d", ErrInvalidConfig, c.MaterialImpactThreshold)
	}
	if c.ControlMinEffectiveness < 0 || c.ControlMinEffectiveness > 1 {
		return fmt.Errorf("%w: control min effectiveness %v outside [0,1]", ErrInvalidConfig, c.ControlMinEffectiveness)
	}
	if !c.RiskAppetite.Valid() {
		return fmt.Errorf("%w: unknown risk appetite level %q", ErrInvalidConfig, c.RiskAppetite)
	}
	seen := make(map[string]struct{}, len(c.Controls))
	for _, ctrl := range c.Controls {
		if ctrl.Name == "" {
			return fmt.Errorf("%w: control with empty name", ErrInvalidConfig)
		}
		if _, dup := seen[ctrl.Name]; dup {
			return fmt.Errorf("%w: duplicate control %q", ErrInvalidConfig, ctrl.Name)
		}
		seen[ctrl.Name] = struct{}{}
		if ctrl.Effectiveness < 0 || ctrl.Effectiveness > 1 {
			return fmt.Errorf("%w: control %q effectiveness %v outside [0,1]", ErrInvalidConfig, ctrl.Name, ctrl.Effectiveness)
		}
	}
	return nil
}
