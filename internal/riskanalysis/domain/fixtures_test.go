package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func lowRiskMetrics() BehavioralMetrics {
	return BehavioralMetrics{
		ClientID:          "CLI-001",
		WindowStart:       testTime.AddDate(0, -1, 0),
		WindowEnd:         testTime,
		TransactionCount:  20,
		TotalVolume:       decimal.NewFromInt(50_000_000),
		AverageVolume:     decimal.NewFromInt(2_500_000),
		MedianVolume:      decimal.NewFromInt(2_000_000),
		Volatility:        0.5,
		RejectionRate:     0.02,
		TypeDiversity:     2,
		DailyFrequency:    0.7,
		PeakWeekRatio:     1.2,
		CounterpartyCount: 10,
		BankCount:         2,
		LegalEntityShare:  0.3,
	}
}

func mediumRiskMetrics() BehavioralMetrics {
	return BehavioralMetrics{
		ClientID:          "CLI-042",
		WindowStart:       testTime.AddDate(0, -1, 0),
		WindowEnd:         testTime,
		TransactionCount:  360,
		TotalVolume:       decimal.NewFromInt(200_000_000),
		AverageVolume:     decimal.NewFromInt(5_000_000),
		MedianVolume:      decimal.NewFromInt(4_000_000),
		Volatility:        1.2,
		RejectionRate:     0.12,
		TypeDiversity:     4,
		HighValueCount:    7,
		FragmentedDays:    1,
		DailyFrequency:    12,
		PeakWeekRatio:     2,
		CounterpartyCount: 30,
		BankCount:         3,
		LegalEntityShare:  0.4,
	}
}

func criticalRiskMetrics() BehavioralMetrics {
	return BehavioralMetrics{
		ClientID:          "CLI-666",
		WindowStart:       testTime.AddDate(0, -1, 0),
		WindowEnd:         testTime,
		TransactionCount:  1200,
		TotalVolume:       decimal.NewFromInt(1_200_000_000),
		AverageVolume:     decimal.NewFromInt(60_000_000),
		MedianVolume:      decimal.NewFromInt(30_000_000),
		Volatility:        2.0,
		RejectionRate:     0.30,
		TypeDiversity:     7,
		HighValueCount:    15,
		FragmentedDays:    5,
		DailyFrequency:    40,
		PeakWeekRatio:     4,
		CounterpartyCount: 80,
		BankCount:         6,
		LegalEntityShare:  0.6,
	}
}
