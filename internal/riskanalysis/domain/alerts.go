package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"
)

// AlertType 告警类别
type AlertType string

const (
	AlertTypeRegulatory   AlertType = "REGULATORY_REPORTING"
	AlertTypeOperational  AlertType = "OPERATIONAL"
	AlertTypeCompliance   AlertType = "COMPLIANCE"
	AlertTypeFraud        AlertType = "FRAUD"
	AlertTypeReputational AlertType = "REPUTATIONAL"
)

// alertTypeRank 类别固定顺序，用于确定性排序
var alertTypeRank = map[AlertType]int{
	AlertTypeRegulatory:   0,
	AlertTypeOperational:  1,
	AlertTypeCompliance:   2,
	AlertTypeFraud:        3,
	AlertTypeReputational: 4,
}

// AlertPriority 告警处置优先级
type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "LOW"
	AlertPriorityMedium   AlertPriority = "MEDIUM"
	AlertPriorityHigh     AlertPriority = "HIGH"
	AlertPriorityCritical AlertPriority = "CRITICAL"
)

// alertPriorityRank 优先级全序
var alertPriorityRank = map[AlertPriority]int{
	AlertPriorityLow:      0,
	AlertPriorityMedium:   1,
	AlertPriorityHigh:     2,
	AlertPriorityCritical: 3,
}

// Rank 返回优先级序号，Low 为 0
func (p AlertPriority) Rank() int { return alertPriorityRank[p] }

// Alert 单条告警，自描述：检出值、越过的阈值与处置动作随告警携带，
// 渲染方无需回查规则。ID 由客户、类别、标题哈希派生，同输入必得同 ID。
type Alert struct {
	ID             string        `json:"id"`
	ClientID       string        `json:"client_id"`
	Type           AlertType     `json:"type"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Priority       AlertPriority `json:"priority"`
	DetectedValue  float64       `json:"detected_value"`
	Threshold      float64       `json:"threshold"`
	RequiredAction string        `json:"required_action"`
	RequiresFiling bool          `json:"requires_filing"`
	DeadlineDays   int           `json:"deadline_days"`
	Deadline       time.Time     `json:"deadline"`
	CreatedAt      time.Time     `json:"created_at"`
}

// alertRule 告警目录条目
type alertRule struct {
	alertType      AlertType
	title          string
	priority       AlertPriority
	threshold      float64
	requiredAction string
	requiresFiling bool
	deadlineDays   int
	hit            func(m BehavioralMetrics, score int, level RiskLevel) bool
	value          func(m BehavioralMetrics, score int) float64
	describe       func(m BehavioralMetrics, score int) string
}

// alertCatalog 固定告警目录
var alertCatalog = []alertRule{
	{
		alertType: AlertTypeRegulatory, title: "unusually large transaction volume",
		priority: AlertPriorityHigh, threshold: 1_000_000_000,
		requiredAction: "validate the source of funds and the economic justification",
		requiresFiling: true, deadlineDays: 3,
		hit: func(m BehavioralMetrics, _ int, _ RiskLevel) bool {
			return m.TotalVolume.InexactFloat64() > 1_000_000_000
		},
		value: func(m BehavioralMetrics, _ int) float64 { return m.TotalVolume.InexactFloat64() },
		describe: func(m BehavioralMetrics, _ int) string {
			return fmt.Sprintf("total volume %s exceeds the regulatory reporting threshold", m.TotalVolume.StringFixed(2))
		},
	},
	{
		alertType: AlertTypeRegulatory, title: "elevated average ticket",
		priority: AlertPriorityMedium, threshold: 50_000_000,
		requiredAction: "review the transactional profile and the nature of the business",
		deadlineDays:   7,
		hit: func(m BehavioralMetrics, _ int, _ RiskLevel) bool {
			return m.AverageVolume.InexactFloat64() > 50_000_000
		},
		value: func(m BehavioralMetrics, _ int) float64 { return m.AverageVolume.InexactFloat64() },
		describe: func(m BehavioralMetrics, _ int) string {
			return fmt.Sprintf("average ticket %s is above the review threshold", m.AverageVolume.StringFixed(2))
		},
	},
	{
		alertType: AlertTypeRegulatory, title: "possible structuring pattern",
		priority: AlertPriorityCritical, threshold: 2,
		requiredAction: "investigate the fragmentation pattern and file a report if confirmed",
		requiresFiling: true, deadlineDays: 2,
		hit:   func(m BehavioralMetrics, _ int, _ RiskLevel) bool { return m.FragmentedDays > 2 },
		value: func(m BehavioralMetrics, _ int) float64 { return float64(m.FragmentedDays) },
		describe: func(m BehavioralMetrics, _ int) string {
			return fmt.Sprintf("fragmented activity detected on %d days within the window", m.FragmentedDays)
		},
	},
	{
		alertType: AlertTypeFraud, title: "high rejection rate",
		priority: AlertPriorityHigh, threshold: 0.25,
		requiredAction: "investigate rejection causes and possible fraud attempts",
		deadlineDays:   5,
		hit:   func(m BehavioralMetrics, _ int, _ RiskLevel) bool { return m.RejectionRate > 0.25 },
		value: func(m BehavioralMetrics, _ int) float64 { return m.RejectionRate },
		describe: func(m BehavioralMetrics, _ int) string {
			return fmt.Sprintf("%.0f%% of transactions were rejected", m.RejectionRate*100)
		},
	},
	{
		alertType: AlertTypeOperational, title: "very high transaction count",
		priority: AlertPriorityMedium, threshold: 1000,
		requiredAction: "schedule periodic manual sample reviews",
		deadlineDays:   14,
		hit:   func(m BehavioralMetrics, _ int, _ RiskLevel) bool { return m.TransactionCount > 1000 },
		value: func(m BehavioralMetrics, _ int) float64 { return float64(m.TransactionCount) },
		describe: func(m BehavioralMetrics, _ int) string {
			return fmt.Sprintf("%d transactions processed within the window", m.TransactionCount)
		},
	},
	{
		alertType: AlertTypeCompliance, title: "unusual transaction type diversity",
		priority: AlertPriorityLow, threshold: 6,
		requiredAction: "validate consistency with the client's declared economic activity",
		deadlineDays:   30,
		hit:   func(m BehavioralMetrics, _ int, _ RiskLevel) bool { return m.TypeDiversity >= 6 },
		value: func(m BehavioralMetrics, _ int) float64 { return float64(m.TypeDiversity) },
		describe: func(m BehavioralMetrics, _ int) string {
			return fmt.Sprintf("%d distinct transaction types used", m.TypeDiversity)
		},
	},
	{
		alertType: AlertTypeCompliance, title: "critical risk classification",
		priority: AlertPriorityCritical, threshold: 75,
		requiredAction: "suspend operations and open an immediate investigation",
		requiresFiling: true, deadlineDays: 1,
		hit:   func(_ BehavioralMetrics, _ int, level RiskLevel) bool { return level == RiskLevelCritical },
		value: func(_ BehavioralMetrics, score int) float64 { return float64(score) },
		describe: func(_ BehavioralMetrics, score int) string {
			return fmt.Sprintf("total score %d exceeds the critical threshold, immediate review required", score)
		},
	},
}

// escalate 将优先级提升一档，Critical 封顶
func escalate(p AlertPriority) AlertPriority {
	switch p {
	case AlertPriorityLow:
		return AlertPriorityMedium
	case AlertPriorityMedium:
		return AlertPriorityHigh
	default:
		return AlertPriorityCritical
	}
}

// alertID 由客户、类别、标题派生稳定告警 ID
func alertID(clientID string, alertType AlertType, title string) string {
	h := fnv.New64a()
	h.Write([]byte(clientID))
	h.Write([]byte{0})
	h.Write([]byte(alertType))
	h.Write([]byte{0})
	h.Write([]byte(title))
	return fmt.Sprintf("ALR-%016x", h.Sum64())
}

// GenerateAlerts 对固定目录逐条求值生成告警。
// 客户处于 Critical 等级时，非 Critical 告警的优先级升一档；
// 同类别同标题去重保留最高优先级；输出按优先级降序、时间升序、类别、标题排序。
func GenerateAlerts(m BehavioralMetrics, score int, level RiskLevel, now time.Time) []Alert {
	byKey := make(map[string]Alert, len(alertCatalog))
	for _, rule := range alertCatalog {
		if !rule.hit(m, score, level) {
			continue
		}
		priority := rule.priority
		if level == RiskLevelCritical && priority != AlertPriorityCritical {
			priority = escalate(priority)
		}
		a := Alert{
			ID:             alertID(m.ClientID, rule.alertType, rule.title),
			ClientID:       m.ClientID,
			Type:           rule.alertType,
			Title:          rule.title,
			Description:    rule.describe(m, score),
			Priority:       priority,
			DetectedValue:  rule.value(m, score),
			Threshold:      rule.threshold,
			RequiredAction: rule.requiredAction,
			RequiresFiling: rule.requiresFiling,
			DeadlineDays:   rule.deadlineDays,
			Deadline:       now.AddDate(0, 0, rule.deadlineDays),
			CreatedAt:      now,
		}
		key := string(a.Type) + "|" + a.Title
		if prev, ok := byKey[key]; !ok || a.Priority.Rank() > prev.Priority.Rank() {
			byKey[key] = a
		}
	}

	alerts := make([]Alert, 0, len(byKey))
	for _, a := range byKey {
		alerts = append(alerts, a)
	}
	SortAlerts(alerts)
	return alerts
}

// SortAlerts 对告警做确定性排序
func SortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if alertTypeRank[a.Type] != alertTypeRank[b.Type] {
			return alertTypeRank[a.Type] < alertTypeRank[b.Type]
		}
		return a.Title < b.Title
	})
}
