package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/domain"
)

// RiskAnalysisService 风险分析应用服务，编排引擎、仓储与事件发布
type RiskAnalysisService struct {
	engine    *domain.Engine
	repo      domain.AssessmentRepository
	publisher domain.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewRiskAnalysisService 构造应用服务
func NewRiskAnalysisService(engine *domain.Engine, repo domain.AssessmentRepository, publisher domain.EventPublisher, logger *slog.Logger) *RiskAnalysisService {
	return &RiskAnalysisService{
		engine:    engine,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock 注入时钟，测试用
func (s *RiskAnalysisService) WithClock(now func() time.Time) *RiskAnalysisService {
	s.now = now
	return s
}

// AnalyzeClient 分析单个客户并持久化结果、发布事件。
// 事件发布失败只记录日志不回滚评估，评估结果本身已落库。
func (s *RiskAnalysisService) AnalyzeClient(ctx context.Context, cmd AnalyzeClientCommand) (domain.RiskAssessment, error) {
	var profile *domain.RegulatoryProfile
	if cmd.BuildProfile {
		p := domain.ClassifyProfile(cmd.Metrics)
		profile = &p
	}

	assessment, err := s.engine.Analyze(cmd.Metrics, profile, s.now().UTC())
	if err != nil {
		return domain.RiskAssessment{}, err
	}

	if err := s.repo.Save(ctx, assessment); err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("save assessment for %s: %w", assessment.ClientID, err)
	}

	s.publishEvents(ctx, assessment)

	s.logger.InfoContext(ctx, "client analyzed",
		"client_id", assessment.ClientID,
		"score", assessment.Score.Total,
		"level", assessment.Level,
		"alerts", len(assessment.Alerts),
	)
	return assessment, nil
}

// AnalyzeBatch 批量分析。单个客户失败不影响其余客户，失败逐条记录在结果中。
func (s *RiskAnalysisService) AnalyzeBatch(ctx context.Context, cmd AnalyzeBatchCommand) (BatchResult, error) {
	result := BatchResult{
		Assessments: make([]domain.RiskAssessment, 0, len(cmd.Clients)),
		Failures:    []BatchItemError{},
	}
	for _, metrics := range cmd.Clients {
		assessment, err := s.AnalyzeClient(ctx, AnalyzeClientCommand{Metrics: metrics, BuildProfile: cmd.BuildProfile})
		if err != nil {
			s.logger.WarnContext(ctx, "batch item failed", "client_id", metrics.ClientID, "error", err)
			result.Failures = append(result.Failures, BatchItemError{ClientID: metrics.ClientID, Error: err.Error()})
			continue
		}
		result.Assessments = append(result.Assessments, assessment)
	}
	return result, nil
}

// GetAssessment 查询客户最新评估
func (s *RiskAnalysisService) GetAssessment(ctx context.Context, clientID string) (domain.RiskAssessment, error) {
	return s.repo.FindByClient(ctx, clientID)
}

// ListAlerts 按最低优先级过滤全量告警
func (s *RiskAnalysisService) ListAlerts(ctx context.Context, minPriority domain.AlertPriority) ([]domain.Alert, error) {
	alerts, err := s.repo.FindAlerts(ctx, minPriority)
	if err != nil {
		return nil, err
	}
	domain.SortAlerts(alerts)
	return alerts, nil
}

// PortfolioSummary 汇总全部已评估客户，排名截取前 topN 名，非正时用默认长度
func (s *RiskAnalysisService) PortfolioSummary(ctx context.Context, topN int) (domain.PortfolioSummary, error) {
	assessments, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.PortfolioSummary{}, err
	}
	if topN <= 0 {
		topN = domain.DefaultRankingLimit
	}
	return domain.SummarizePortfolio(assessments, topN), nil
}

// RenderReport 生成客户评估的纯文本执行报告
func (s *RiskAnalysisService) RenderReport(ctx context.Context, clientID string) (string, error) {
	a, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return "", err
	}
	return renderReport(a), nil
}

// publishEvents 发布评估完成与告警事件，失败仅告警日志
func (s *RiskAnalysisService) publishEvents(ctx context.Context, a domain.RiskAssessment) {
	if s.publisher == nil {
		return
	}
	created := domain.AssessmentCreatedEvent{
		EventType:  domain.EventAssessmentCreated,
		ClientID:   a.ClientID,
		Score:      a.Score.Total,
		Level:      a.Level,
		AlertCount: len(a.Alerts),
		Escalation: a.Escalation,
		AssessedAt: a.AssessedAt,
	}
	if err := s.publisher.PublishAssessmentCreated(ctx, created); err != nil {
		s.logger.WarnContext(ctx, "publish assessment event failed", "client_id", a.ClientID, "error", err)
	}
	for _, alert := range a.Alerts {
		event := domain.AlertGeneratedEvent{EventType: domain.EventAlertGenerated, Alert: alert, Level: a.Level}
		if err := s.publisher.PublishAlertGenerated(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "publish alert event failed", "alert_id", alert.ID, "error", err)
		}
	}
}

// renderReport 渲染执行报告文本，段落顺序固定保证可比对
func renderReport(a domain.RiskAssessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RISK ASSESSMENT REPORT\n")
	fmt.Fprintf(&b, "Client: %s\n", a.ClientID)
	fmt.Fprintf(&b, "Assessed at: %s\n", a.AssessedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "\nScore: %d/100 (%s)\n", a.Score.Total, a.Level)
	fmt.Fprintf(&b, "  regulatory:  %d (weight %.2f)\n", a.Score.Regulatory, a.Score.Weights.Regulatory)
	fmt.Fprintf(&b, "  signal:      %d (weight %.2f)\n", a.Score.Signal, a.Score.Weights.Signal)
	fmt.Fprintf(&b, "  operational: %d (weight %.2f)\n", a.Score.Operational, a.Score.Weights.Operational)

	if len(a.Score.CriticalFactors) > 0 {
		fmt.Fprintf(&b, "\nCritical factors:\n")
		for _, f := range a.Score.CriticalFactors {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}

	triggered := domain.TriggeredFlags(a.Flags)
	fmt.Fprintf(&b, "\nTriggered signals (%d of %d):\n", len(triggered), len(a.Flags))
	for _, f := range triggered {
		fmt.Fprintf(&b, "  - %s [%s] value=%g threshold=%g\n", f.Name, f.Severity, f.Value, f.Threshold)
	}

	fmt.Fprintf(&b, "\nAlerts (%d):\n", len(a.Alerts))
	for _, alert := range a.Alerts {
		filing := ""
		if alert.RequiresFiling {
			filing = " filing-required"
		}
		fmt.Fprintf(&b, "  - [%s]%s %s: %s (due %s)\n",
			alert.Priority, filing, alert.Title, alert.Description, alert.Deadline.Format("2006-01-02"))
		fmt.Fprintf(&b, "    detected %g against threshold %g; action: %s\n",
			alert.DetectedValue, alert.Threshold, alert.RequiredAction)
	}

	fmt.Fprintf(&b, "\nRisk matrix: inherent %s -> residual %s (mean control effectiveness %.2f)\n",
		a.Matrix.InherentLevel, a.Matrix.ResidualLevel, a.Matrix.MeanEffectiveness)
	if len(a.Matrix.Gaps) > 0 {
		gaps := make([]string, 0, len(a.Matrix.Gaps))
		for _, g := range a.Matrix.Gaps {
			gaps = append(gaps, fmt.Sprintf("%s (%s)", g.Control, g.Reason))
		}
		sort.Strings(gaps)
		fmt.Fprintf(&b, "Control gaps: %s\n", strings.Join(gaps, "; "))
	}

	fmt.Fprintf(&b, "\nRecommendations:\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	fmt.Fprintf(&b, "\nNext review: %s\n", a.NextReview.Format("2006-01-02"))
	fmt.Fprintf(&b, "Enhanced due diligence: %t\n", a.EnhancedDueDiligence)
	fmt.Fprintf(&b, "Escalation required: %t\n", a.Escalation)
	return b.String()
}
