package domain

import "fmt"

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// riskLevelRank 等级全序，用于比较与排序
var riskLevelRank = map[RiskLevel]int{
	RiskLevelLow:      0,
	RiskLevelMedium:   1,
	RiskLevelHigh:     2,
	RiskLevelCritical: 3,
}

// AllRiskLevels 按升序返回全部等级
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical}
}

// Rank 返回等级序号，Low 为 0
func (l RiskLevel) Rank() int { return riskLevelRank[l] }

// Above 判断 l 是否严格高于 other
func (l RiskLevel) Above(other RiskLevel) bool { return l.Rank() > other.Rank() }

// Valid 判断是否为已知等级
func (l RiskLevel) Valid() bool {
	_, ok := riskLevelRank[l]
	return ok
}

// Bands 分类阈值，三个上界将 [0,100] 划分为四个左闭右开区间。
// 边界值归属较低等级：score <= LowMax 为 Low，score <= MediumMax 为 Medium，以此类推。
type Bands struct {
	LowMax    int `json:"low_max"    mapstructure:"low_max"`
	MediumMax int `json:"medium_max" mapstructure:"medium_max"`
	HighMax   int `json:"high_max"   mapstructure:"high_max"`
}

// Validate 校验阈值严格递增且落在 (0,100) 内
func (b Bands) Validate() error {
	if b.LowMax <= 0 || b.LowMax >= b.MediumMax || b.MediumMax >= b.HighMax || b.HighMax >= 100 {
		return fmt.Errorf("%w: band boundaries must satisfy 0 < low < medium < high < 100, got %d/%d/%d",
			ErrInvalidConfig, b.LowMax, b.MediumMax, b.HighMax)
	}
	return nil
}

// ClassifyScore 将总分映射为风险等级。
// 分数超出 [0,100] 视为契约违规，返回错误而不是就近截断。
func ClassifyScore(score int, b Bands) (RiskLevel, error) {
	if score < 0 || score > 100 {
		return "", fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}
	switch {
	case score <= b.LowMax:
		return RiskLevelLow, nil
	case score <= b.MediumMax:
		return RiskLevelMedium, nil
	case score <= b.HighMax:
		return RiskLevelHigh, nil
	default:
		return RiskLevelCritical, nil
	}
}
