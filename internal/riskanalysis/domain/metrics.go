package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BehavioralMetrics 单个客户在分析窗口内的行为指标快照。
// 由外部聚合器产出，核心只读消费；金额统一为单一法币单位，比率为 [0,1] 小数。
type BehavioralMetrics struct {
	ClientID          string          `json:"client_id"`
	WindowStart       time.Time       `json:"window_start"`
	WindowEnd         time.Time       `json:"window_end"`
	TransactionCount  int             `json:"transaction_count"`
	TotalVolume       decimal.Decimal `json:"total_volume"`
	AverageVolume     decimal.Decimal `json:"average_volume"`
	MedianVolume      decimal.Decimal `json:"median_volume"`
	Volatility        float64         `json:"volatility"`          // 金额变异系数 (std/mean)
	RejectionRate     float64         `json:"rejection_rate"`      // 被拒绝/退回交易占比
	TypeDiversity     int             `json:"type_diversity"`      // 不同交易类型数
	HighValueCount    int             `json:"high_value_count"`    // 单笔超过高额阈值的交易数
	FragmentedDays    int             `json:"fragmented_days"`     // 多笔小额合计大额的可疑天数
	DailyFrequency    float64         `json:"daily_frequency"`     // 日均交易笔数
	PeakWeekRatio     float64         `json:"peak_week_ratio"`     // 峰值周交易量与周均值之比
	CounterpartyCount int             `json:"counterparty_count"`  // 不同交易对手数
	BankCount         int             `json:"bank_count"`          // 不同银行数
	LegalEntityShare  float64         `json:"legal_entity_share"`  // 法人对手占比
}

// Validate 校验指标是否落在文档化定义域内。
// 违规即快速失败并指出字段，绝不静默截断；截断只保留给计算过程中的饱和语义。
func (m BehavioralMetrics) Validate() error {
	if m.ClientID == "" {
		return fmt.Errorf("%w: client_id is empty", ErrInvalidMetrics)
	}
	if !m.WindowStart.IsZero() && !m.WindowEnd.IsZero() && m.WindowEnd.Before(m.WindowStart) {
		return fmt.Errorf("%w: window_end %s before window_start %s",
			ErrInvalidMetrics, m.WindowEnd.Format(time.RFC3339), m.WindowStart.Format(time.RFC3339))
	}
	for name, v := range map[string]int{
		"transaction_count":  m.TransactionCount,
		"type_diversity":     m.TypeDiversity,
		"high_value_count":   m.HighValueCount,
		"fragmented_days":    m.FragmentedDays,
		"counterparty_count": m.CounterpartyCount,
		"bank_count":         m.BankCount,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalidMetrics, name, v)
		}
	}
	for name, v := range map[string]decimal.Decimal{
		"total_volume":   m.TotalVolume,
		"average_volume": m.AverageVolume,
		"median_volume":  m.MedianVolume,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s is negative (%s)", ErrInvalidMetrics, name, v.String())
		}
	}
	for name, v := range map[string]float64{
		"rejection_rate":     m.RejectionRate,
		"legal_entity_share": m.LegalEntityShare,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%v outside [0,1]", ErrInvalidMetrics, name, v)
		}
	}
	for name, v := range map[string]float64{
		"volatility":      m.Volatility,
		"daily_frequency": m.DailyFrequency,
		"peak_week_ratio": m.PeakWeekRatio,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidMetrics, name, v)
		}
	}
	return nil
}
