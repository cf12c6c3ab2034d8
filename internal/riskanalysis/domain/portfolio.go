package domain

import "sort"

// RankedClient 组合排名中的单个客户
type RankedClient struct {
	ClientID string    `json:"client_id"`
	Score    int       `json:"score"`
	Level    RiskLevel `json:"level"`
}

// PortfolioSummary 全组合风险汇总
type PortfolioSummary struct {
	TotalClients    int               `json:"total_clients"`
	LevelCounts     map[RiskLevel]int `json:"level_counts"`
	AverageScore    float64           `json:"average_score"`
	TotalAlerts     int               `json:"total_alerts"`
	FilingRequired  int               `json:"filing_required"`
	Ranking         []RankedClient    `json:"ranking"`
	Recommendations []string          `json:"recommendations"`
}

// DefaultRankingLimit 排名默认长度
const DefaultRankingLimit = 10

// SummarizePortfolio 汇总一批评估结果。
// 等级计数恒包含全部四个等级（可为零）；排名按分数降序、客户 ID 升序，
// 截取前 topN 名，topN 非正时不截取。空输入返回零值汇总而非错误。
func SummarizePortfolio(assessments []RiskAssessment, topN int) PortfolioSummary {
	counts := make(map[RiskLevel]int, 4)
	for _, level := range AllRiskLevels() {
		counts[level] = 0
	}

	summary := PortfolioSummary{LevelCounts: counts}
	if len(assessments) == 0 {
		summary.Ranking = []RankedClient{}
		summary.Recommendations = []string{}
		return summary
	}

	scoreSum := 0
	ranking := make([]RankedClient, 0, len(assessments))
	for _, a := range assessments {
		counts[a.Level]++
		scoreSum += a.Score.Total
		summary.TotalAlerts += len(a.Alerts)
		for _, alert := range a.Alerts {
			if alert.RequiresFiling {
				summary.FilingRequired++
			}
		}
		ranking = append(ranking, RankedClient{ClientID: a.ClientID, Score: a.Score.Total, Level: a.Level})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].ClientID < ranking[j].ClientID
	})
	if topN > 0 && len(ranking) > topN {
		ranking = ranking[:topN]
	}

	summary.TotalClients = len(assessments)
	summary.AverageScore = float64(scoreSum) / float64(len(assessments))
	summary.Ranking = ranking
	summary.Recommendations = portfolioRecommendations(counts, summary.FilingRequired)
	return summary
}

// portfolioRecommendations 依据等级分布产出组合层面的建议
func portfolioRecommendations(counts map[RiskLevel]int, filings int) []string {
	recs := make([]string, 0, 4)
	if n := counts[RiskLevelCritical]; n > 0 {
		recs = append(recs, "prioritize immediate review of critical-risk clients")
	}
	if n := counts[RiskLevelHigh] + counts[RiskLevelCritical]; n > 0 {
		recs = append(recs, "schedule enhanced due diligence for all high and critical risk clients")
	}
	if filings > 0 {
		recs = append(recs, "prepare pending regulatory filings before their deadlines")
	}
	if len(recs) == 0 {
		recs = append(recs, "portfolio risk is within normal bounds, continue standard monitoring")
	}
	return recs
}
