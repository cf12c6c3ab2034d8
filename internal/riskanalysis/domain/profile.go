package domain

// ProfileLevel 监管画像等级
type ProfileLevel string

const (
	ProfileLevelLow    ProfileLevel = "LOW"
	ProfileLevelMedium ProfileLevel = "MEDIUM"
	ProfileLevelHigh   ProfileLevel = "HIGH"
)

// ProfileFactor 画像评分中的单个加分因子
type ProfileFactor struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// RegulatoryProfile 基于监管分类方法的客户画像。
// 有画像时其分数直接作为监管子分；无画像时监管子分退回行为量规。
type RegulatoryProfile struct {
	ClientID string          `json:"client_id"`
	Score    int             `json:"score"`
	Level    ProfileLevel    `json:"level"`
	Factors  []ProfileFactor `json:"factors"`
}

// ClassifyProfile 根据行为指标构建监管画像。
// 加分因子固定，分数饱和于 100；因子顺序即加分规则顺序。
func ClassifyProfile(m BehavioralMetrics) RegulatoryProfile {
	score := 0
	factors := make([]ProfileFactor, 0, 6)
	add := func(name string, points int) {
		score += points
		factors = append(factors, ProfileFactor{Name: name, Points: points})
	}

	if m.TotalVolume.InexactFloat64() > 100_000_000 {
		add("high total volume", 20)
	}
	if m.AverageVolume.InexactFloat64() > 10_000_000 {
		add("high average ticket", 15)
	}
	if m.DailyFrequency > 10 {
		add("high transaction frequency", 15)
	}
	if m.TypeDiversity >= 3 {
		add("diverse transaction types", 10)
	}
	if m.RejectionRate > 0.15 {
		add("elevated rejection rate", 20)
	}
	if m.LegalEntityShare > 0.5 {
		add("legal entity counterparties dominate", 10)
	}

	if score > 100 {
		score = 100
	}
	level := ProfileLevelLow
	switch {
	case score >= 60:
		level = ProfileLevelHigh
	case score >= 30:
		level = ProfileLevelMedium
	}
	return RegulatoryProfile{ClientID: m.ClientID, Score: score, Level: level, Factors: factors}
}
