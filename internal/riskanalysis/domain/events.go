package domain

import (
	"context"
	"time"
)

// 领域事件类型
const (
	EventAssessmentCreated = "risk.assessment.created"
	EventAlertGenerated    = "risk.alert.generated"
)

// AssessmentCreatedEvent 评估完成事件载荷
type AssessmentCreatedEvent struct {
	EventType  string    `json:"event_type"`
	ClientID   string    `json:"client_id"`
	Score      int       `json:"score"`
	Level      RiskLevel `json:"level"`
	AlertCount int       `json:"alert_count"`
	Escalation bool      `json:"escalation"`
	AssessedAt time.Time `json:"assessed_at"`
}

// AlertGeneratedEvent 告警产生事件载荷
type AlertGeneratedEvent struct {
	EventType string    `json:"event_type"`
	Alert     Alert     `json:"alert"`
	Level     RiskLevel `json:"level"`
}

// EventPublisher 领域事件发布端口，由基础设施层实现
type EventPublisher interface {
	PublishAssessmentCreated(ctx context.Context, event AssessmentCreatedEvent) error
	PublishAlertGenerated(ctx context.Context, event AlertGeneratedEvent) error
}
