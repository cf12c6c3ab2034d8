package domain

import "context"

// AssessmentRepository 评估结果持久化端口。
// Save 以客户为键幂等覆盖最新评估；FindByClient 未命中时返回 ErrAssessmentNotFound。
type AssessmentRepository interface {
	Save(ctx context.Context, assessment RiskAssessment) error
	FindByClient(ctx context.Context, clientID string) (RiskAssessment, error)
	FindAll(ctx context.Context) ([]RiskAssessment, error)
	FindAlerts(ctx context.Context, minPriority AlertPriority) ([]Alert, error)
}
