package domain

import "time"

// levelRecommendations 各等级的标准处置建议
var levelRecommendations = map[RiskLevel][]string{
	RiskLevelLow: {
		"maintain standard periodic monitoring",
		"refresh client documentation on the regular schedule",
	},
	RiskLevelMedium: {
		"increase monitoring frequency for this client",
		"review recent transaction patterns for consistency with the declared profile",
		"verify that client documentation is current",
	},
	RiskLevelHigh: {
		"apply enhanced due diligence procedures",
		"request supporting documentation for large transactions",
		"escalate the file to the compliance officer for review",
		"shorten the review cycle until the risk level decreases",
	},
	RiskLevelCritical: {
		"apply enhanced due diligence procedures immediately",
		"escalate the file to the compliance committee",
		"evaluate whether a regulatory filing is required",
		"consider transaction restrictions until the review concludes",
	},
}

// RecommendationsFor 返回等级对应的处置建议副本
func RecommendationsFor(level RiskLevel) []string {
	src := levelRecommendations[level]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// NextReview 按等级对应的复审间隔计算下次复审日期
func NextReview(level RiskLevel, cfg Config, now time.Time) time.Time {
	return now.AddDate(0, 0, cfg.ReviewIntervalDays[level])
}

// RequiresEnhancedDueDiligence 判断等级是否触发强化尽调
func RequiresEnhancedDueDiligence(level RiskLevel) bool {
	return level == RiskLevelHigh || level == RiskLevelCritical
}

// RequiresEscalation 判断是否需要上报：
// 等级为 Critical，或存在需监管申报的 Critical 优先级告警。
func RequiresEscalation(level RiskLevel, alerts []Alert) bool {
	if level == RiskLevelCritical {
		return true
	}
	for _, a := range alerts {
		if a.Priority == AlertPriorityCritical && a.RequiresFiling {
			return true
		}
	}
	return false
}
