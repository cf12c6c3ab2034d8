package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/domain"
)

// AnalyzeClientCommand 单客户分析命令
type AnalyzeClientCommand struct {
	Metrics      domain.BehavioralMetrics `json:"metrics"`
	BuildProfile bool                     `json:"build_profile"`
}

// AnalyzeBatchCommand 批量分析命令
type AnalyzeBatchCommand struct {
	Clients      []domain.BehavioralMetrics `json:"clients"`
	BuildProfile bool                       `json:"build_profile"`
}

// BatchItemError 批量分析中单个客户的失败记录
type BatchItemError struct {
	ClientID string `json:"client_id"`
	Error    string `json:"error"`
}

// BatchResult 批量分析结果：成功的评估与逐客户失败记录并列返回
type BatchResult struct {
	Assessments []domain.RiskAssessment `json:"assessments"`
	Failures    []BatchItemError        `json:"failures"`
}

// MetricsInput HTTP 层的指标输入形态，金额以字符串承载避免精度丢失
type MetricsInput struct {
	ClientID          string  `json:"client_id" binding:"required"`
	WindowStart       string  `json:"window_start"`
	WindowEnd         string  `json:"window_end"`
	TransactionCount  int     `json:"transaction_count"`
	TotalVolume       string  `json:"total_volume"`
	AverageVolume     string  `json:"average_volume"`
	MedianVolume      string  `json:"median_volume"`
	Volatility        float64 `json:"volatility"`
	RejectionRate     float64 `json:"rejection_rate"`
	TypeDiversity     int     `json:"type_diversity"`
	HighValueCount    int     `json:"high_value_count"`
	FragmentedDays    int     `json:"fragmented_days"`
	DailyFrequency    float64 `json:"daily_frequency"`
	PeakWeekRatio     float64 `json:"peak_week_ratio"`
	CounterpartyCount int     `json:"counterparty_count"`
	BankCount         int     `json:"bank_count"`
	LegalEntityShare  float64 `json:"legal_entity_share"`
}

// ToDomain 转换为领域指标，金额与时间字段逐一解析
func (in MetricsInput) ToDomain() (domain.BehavioralMetrics, error) {
	m := domain.BehavioralMetrics{
		ClientID:          in.ClientID,
		TransactionCount:  in.TransactionCount,
		Volatility:        in.Volatility,
		RejectionRate:     in.RejectionRate,
		TypeDiversity:     in.TypeDiversity,
		HighValueCount:    in.HighValueCount,
		FragmentedDays:    in.FragmentedDays,
		DailyFrequency:    in.DailyFrequency,
		PeakWeekRatio:     in.PeakWeekRatio,
		CounterpartyCount: in.CounterpartyCount,
		BankCount:         in.BankCount,
		LegalEntityShare:  in.LegalEntityShare,
	}

	var err error
	if m.TotalVolume, err = parseAmount(in.TotalVolume); err != nil {
		return domain.BehavioralMetrics{}, err
	}
	if m.AverageVolume, err = parseAmount(in.AverageVolume); err != nil {
		return domain.BehavioralMetrics{}, err
	}
	if m.MedianVolume, err = parseAmount(in.MedianVolume); err != nil {
		return domain.BehavioralMetrics{}, err
	}
	if m.WindowStart, err = parseTime(in.WindowStart); err != nil {
		return domain.BehavioralMetrics{}, err
	}
	if m.WindowEnd, err = parseTime(in.WindowEnd); err != nil {
		return domain.BehavioralMetrics{}, err
	}
	return m, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
