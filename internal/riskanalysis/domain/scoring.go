package domain

import "math"

// 子分饱和上限与关键因子阈值
const (
	subScoreCap            = 100
	criticalFactorSubScore = 70
)

// ScoreDriver 对子分有实质贡献的量规命中项
type ScoreDriver struct {
	Dimension string `json:"dimension"`
	Reason    string `json:"reason"`
	Points    int    `json:"points"`
}

// ScoreBreakdown 加权评分结果及其构成
type ScoreBreakdown struct {
	Total           int           `json:"total"`
	Regulatory      int           `json:"regulatory"`
	Signal          int           `json:"signal"`
	Operational     int           `json:"operational"`
	Weights         Weights       `json:"weights"`
	CriticalFactors []string      `json:"critical_factors"`
	Drivers         []ScoreDriver `json:"drivers"`
}

// scoreRule 子分量规中的单条加分规则
type scoreRule struct {
	reason string
	points int
	hit    func(BehavioralMetrics) bool
}

// regulatoryRules 无监管画像时的监管维度退回量规
var regulatoryRules = []scoreRule{
	{"volume above 500M", 25, func(m BehavioralMetrics) bool { return m.TotalVolume.InexactFloat64() > 500_000_000 }},
	{"volume above 100M", 15, func(m BehavioralMetrics) bool {
		v := m.TotalVolume.InexactFloat64()
		return v > 100_000_000 && v <= 500_000_000
	}},
	{"daily frequency above 20", 20, func(m BehavioralMetrics) bool { return m.DailyFrequency > 20 }},
	{"daily frequency above 10", 10, func(m BehavioralMetrics) bool { return m.DailyFrequency > 10 && m.DailyFrequency <= 20 }},
}

// signalRules 可疑信号维度量规
var signalRules = []scoreRule{
	{"more than 10 high-value transactions", 20, func(m BehavioralMetrics) bool { return m.HighValueCount > 10 }},
	{"more than 5 high-value transactions", 10, func(m BehavioralMetrics) bool { return m.HighValueCount > 5 && m.HighValueCount <= 10 }},
	{"fragmentation on more than 3 days", 25, func(m BehavioralMetrics) bool { return m.FragmentedDays > 3 }},
	{"fragmentation on more than 1 day", 15, func(m BehavioralMetrics) bool { return m.FragmentedDays > 1 && m.FragmentedDays <= 3 }},
	{"rejection rate above 20%", 20, func(m BehavioralMetrics) bool { return m.RejectionRate > 0.20 }},
	{"rejection rate above 10%", 10, func(m BehavioralMetrics) bool { return m.RejectionRate > 0.10 && m.RejectionRate <= 0.20 }},
}

// operationalRules 运营复杂度维度量规
var operationalRules = []scoreRule{
	{"5 or more transaction types", 20, func(m BehavioralMetrics) bool { return m.TypeDiversity >= 5 }},
	{"3 or more transaction types", 10, func(m BehavioralMetrics) bool { return m.TypeDiversity >= 3 && m.TypeDiversity < 5 }},
	{"volatility above 1.5", 15, func(m BehavioralMetrics) bool { return m.Volatility > 1.5 }},
	{"volatility above 1.0", 8, func(m BehavioralMetrics) bool { return m.Volatility > 1.0 && m.Volatility <= 1.5 }},
	{"rejection rate above 15%", 25, func(m BehavioralMetrics) bool { return m.RejectionRate > 0.15 }},
	{"rejection rate above 10%", 15, func(m BehavioralMetrics) bool { return m.RejectionRate > 0.10 && m.RejectionRate <= 0.15 }},
	{"peak week concentration above 3x", 15, func(m BehavioralMetrics) bool { return m.PeakWeekRatio > 3 }},
	{"more than 50 counterparties", 10, func(m BehavioralMetrics) bool { return m.CounterpartyCount > 50 }},
}

// applyRules 执行一个维度的量规，返回饱和后子分与命中项
func applyRules(dimension string, rules []scoreRule, m BehavioralMetrics) (int, []ScoreDriver) {
	score := 0
	drivers := make([]ScoreDriver, 0, len(rules))
	for _, r := range rules {
		if !r.hit(m) {
			continue
		}
		score += r.points
		drivers = append(drivers, ScoreDriver{Dimension: dimension, Reason: r.reason, Points: r.points})
	}
	if score > subScoreCap {
		score = subScoreCap
	}
	return score, drivers
}

// diversityPoints 监管退回量规中的类型多样性加分，上限 15
func diversityPoints(diversity int) int {
	p := diversity * 4
	if p > 15 {
		p = 15
	}
	return p
}

// CalculateScore 计算加权风险总分。
// 有监管画像时画像分直接充当监管子分，否则退回行为量规；
// 三个子分各自饱和于 100，总分四舍五入后截断到 [0,100]。
func CalculateScore(m BehavioralMetrics, profile *RegulatoryProfile, w Weights, materialThreshold int) ScoreBreakdown {
	var regulatory int
	var drivers []ScoreDriver

	if profile != nil {
		regulatory = profile.Score
		for _, f := range profile.Factors {
			drivers = append(drivers, ScoreDriver{Dimension: "regulatory", Reason: f.Name, Points: f.Points})
		}
	} else {
		var regDrivers []ScoreDriver
		regulatory, regDrivers = applyRules("regulatory", regulatoryRules, m)
		if p := diversityPoints(m.TypeDiversity); p > 0 {
			regulatory += p
			regDrivers = append(regDrivers, ScoreDriver{Dimension: "regulatory", Reason: "transaction type diversity", Points: p})
		}
		if regulatory > subScoreCap {
			regulatory = subScoreCap
		}
		drivers = append(drivers, regDrivers...)
	}

	signal, signalDrivers := applyRules("signal", signalRules, m)
	drivers = append(drivers, signalDrivers...)

	operational, opDrivers := applyRules("operational", operationalRules, m)
	drivers = append(drivers, opDrivers...)

	total := int(math.Round(float64(regulatory)*w.Regulatory + float64(signal)*w.Signal + float64(operational)*w.Operational))
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	material := drivers[:0:0]
	for _, d := range drivers {
		if d.Points >= materialThreshold {
			material = append(material, d)
		}
	}

	var critical []string
	if regulatory > criticalFactorSubScore {
		critical = append(critical, "high-risk regulatory profile")
	}
	if signal > criticalFactorSubScore {
		critical = append(critical, "suspicious activity signals detected")
	}
	if operational > criticalFactorSubScore {
		critical = append(critical, "elevated operational risk")
	}

	return ScoreBreakdown{
		Total:           total,
		Regulatory:      regulatory,
		Signal:          signal,
		Operational:     operational,
		Weights:         w,
		CriticalFactors: critical,
		Drivers:         material,
	}
}
