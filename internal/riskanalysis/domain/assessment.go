package domain

import "time"

// RiskAssessment 单个客户一次完整分析的聚合结果
type RiskAssessment struct {
	ClientID             string             `json:"client_id"`
	AssessedAt           time.Time          `json:"assessed_at"`
	Metrics              BehavioralMetrics  `json:"metrics"`
	Profile              *RegulatoryProfile `json:"profile,omitempty"`
	Flags                []RiskFlag         `json:"flags"`
	Score                ScoreBreakdown     `json:"score"`
	Level                RiskLevel          `json:"level"`
	Alerts               []Alert            `json:"alerts"`
	Matrix               RiskMatrix         `json:"matrix"`
	Recommendations      []string           `json:"recommendations"`
	NextReview           time.Time          `json:"next_review"`
	EnhancedDueDiligence bool               `json:"enhanced_due_diligence"`
	Escalation           bool               `json:"escalation"`
}

// Engine 确定性风险评估引擎。
// 构造时整体校验配置，此后对同一输入的分析结果完全可复现。
type Engine struct {
	cfg Config
}

// NewEngine 构造引擎，配置非法时立即拒绝
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config 返回引擎当前配置
func (e *Engine) Config() Config { return e.cfg }

// Analyze 对单个客户执行完整评估流水线：
// 校验指标、求值信号、加权评分、分级、生成告警、推导风险矩阵、产出处置建议。
// 时间由调用方注入，引擎本身不读取时钟。
func (e *Engine) Analyze(m BehavioralMetrics, profile *RegulatoryProfile, now time.Time) (RiskAssessment, error) {
	if err := m.Validate(); err != nil {
		return RiskAssessment{}, err
	}

	flags := EvaluateFlags(m)
	score := CalculateScore(m, profile, e.cfg.Weights, e.cfg.MaterialImpactThreshold)
	level, err := ClassifyScore(score.Total, e.cfg.Bands)
	if err != nil {
		return RiskAssessment{}, err
	}
	alerts := GenerateAlerts(m, score.Total, level, now)
	matrix, err := BuildMatrix(level, e.cfg)
	if err != nil {
		return RiskAssessment{}, err
	}

	return RiskAssessment{
		ClientID:             m.ClientID,
		AssessedAt:           now,
		Metrics:              m,
		Profile:              profile,
		Flags:                flags,
		Score:                score,
		Level:                level,
		Alerts:               alerts,
		Matrix:               matrix,
		Recommendations:      RecommendationsFor(level),
		NextReview:           NextReview(level, e.cfg, now),
		EnhancedDueDiligence: RequiresEnhancedDueDiligence(level),
		Escalation:           RequiresEscalation(level, alerts),
	}, nil
}
