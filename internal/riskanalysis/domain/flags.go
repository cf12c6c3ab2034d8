package domain

// FlagSeverity 风险信号严重度
type FlagSeverity string

const (
	SeverityLow      FlagSeverity = "LOW"
	SeverityMedium   FlagSeverity = "MEDIUM"
	SeverityHigh     FlagSeverity = "HIGH"
	SeverityCritical FlagSeverity = "CRITICAL"
)

// FlagName 固定信号目录中的信号名
type FlagName string

const (
	FlagLargeVolume           FlagName = "large_volume"
	FlagHighAverageTicket     FlagName = "high_average_ticket"
	FlagHighValueTransactions FlagName = "high_value_transactions"
	FlagFragmentation         FlagName = "fragmentation_suspected"
	FlagHighRejectionRate     FlagName = "high_rejection_rate"
	FlagElevatedRejection     FlagName = "elevated_rejection_rate"
	FlagHighDailyFrequency    FlagName = "high_daily_frequency"
	FlagHighTypeDiversity     FlagName = "high_type_diversity"
	FlagTemporalConcentration FlagName = "temporal_concentration"
	FlagManyCounterparties    FlagName = "many_counterparties"
	FlagHighVolatility        FlagName = "high_volatility"
)

// RiskFlag 一次评估后的信号结果。
// 每次运行对目录内全部信号求值并完整返回，调用方据此区分"未触发"与"未检查"。
type RiskFlag struct {
	Name      FlagName     `json:"name"`
	Triggered bool         `json:"triggered"`
	Severity  FlagSeverity `json:"severity"`
	Value     float64      `json:"value"`
	Threshold float64      `json:"threshold"`
	Points    int          `json:"points"`
}

// flagRule 信号目录条目：阈值比较规则以数据形式声明，便于审计与单测。
// inclusive 为 true 时触发条件为 value >= threshold，否则为 value > threshold。
// upgradeAt > 0 时，value > upgradeAt 将严重度与分值升级一档。
type flagRule struct {
	name            FlagName
	severity        FlagSeverity
	threshold       float64
	inclusive       bool
	points          int
	upgradeAt       float64
	upgradeSeverity FlagSeverity
	upgradePoints   int
	value           func(BehavioralMetrics) float64
}

// flagCatalog 固定信号目录，顺序即报告顺序
var flagCatalog = []flagRule{
	{
		name: FlagLargeVolume, severity: SeverityHigh, threshold: 1_000_000_000, points: 25,
		value: func(m BehavioralMetrics) float64 { return m.TotalVolume.InexactFloat64() },
	},
	{
		name: FlagHighAverageTicket, severity: SeverityMedium, threshold: 50_000_000, points: 15,
		value: func(m BehavioralMetrics) float64 { return m.AverageVolume.InexactFloat64() },
	},
	{
		name: FlagHighValueTransactions, severity: SeverityMedium, threshold: 5, points: 15,
		upgradeAt: 10, upgradeSeverity: SeverityHigh, upgradePoints: 25,
		value: func(m BehavioralMetrics) float64 { return float64(m.HighValueCount) },
	},
	{
		name: FlagFragmentation, severity: SeverityCritical, threshold: 2, points: 30,
		value: func(m BehavioralMetrics) float64 { return float64(m.FragmentedDays) },
	},
	{
		name: FlagHighRejectionRate, severity: SeverityHigh, threshold: 0.25, points: 20,
		value: func(m BehavioralMetrics) float64 { return m.RejectionRate },
	},
	{
		name: FlagElevatedRejection, severity: SeverityMedium, threshold: 0.10, points: 10,
		value: func(m BehavioralMetrics) float64 { return m.RejectionRate },
	},
	{
		name: FlagHighDailyFrequency, severity: SeverityMedium, threshold: 20, points: 15,
		value: func(m BehavioralMetrics) float64 { return m.DailyFrequency },
	},
	{
		name: FlagHighTypeDiversity, severity: SeverityLow, threshold: 6, inclusive: true, points: 10,
		value: func(m BehavioralMetrics) float64 { return float64(m.TypeDiversity) },
	},
	{
		name: FlagTemporalConcentration, severity: SeverityMedium, threshold: 3.0, points: 15,
		value: func(m BehavioralMetrics) float64 { return m.PeakWeekRatio },
	},
	{
		name: FlagManyCounterparties, severity: SeverityLow, threshold: 50, points: 10,
		value: func(m BehavioralMetrics) float64 { return float64(m.CounterpartyCount) },
	},
	{
		name: FlagHighVolatility, severity: SeverityMedium, threshold: 1.5, points: 15,
		value: func(m BehavioralMetrics) float64 { return m.Volatility },
	},
}

// EvaluateFlags 对目录内全部信号求值。
// 纯函数：相同指标输入必然得到相同的信号集合。
func EvaluateFlags(m BehavioralMetrics) []RiskFlag {
	flags := make([]RiskFlag, 0, len(flagCatalog))
	for _, rule := range flagCatalog {
		v := rule.value(m)
		triggered := v > rule.threshold
		if rule.inclusive {
			triggered = v >= rule.threshold
		}
		severity := rule.severity
		points := rule.points
		if triggered && rule.upgradeAt > 0 && v > rule.upgradeAt {
			severity = rule.upgradeSeverity
			points = rule.upgradePoints
		}
		flags = append(flags, RiskFlag{
			Name:      rule.name,
			Triggered: triggered,
			Severity:  severity,
			Value:     v,
			Threshold: rule.threshold,
			Points:    points,
		})
	}
	return flags
}

// TriggeredFlags 过滤出已触发的信号
func TriggeredFlags(flags []RiskFlag) []RiskFlag {
	out := make([]RiskFlag, 0, len(flags))
	for _, f := range flags {
		if f.Triggered {
			out = append(out, f)
		}
	}
	return out
}
