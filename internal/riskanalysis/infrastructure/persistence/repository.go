package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/domain"
)

// AssessmentRecord 评估结果表，嵌套结构整体以 JSON 存储
type AssessmentRecord struct {
	ID         uint      `gorm:"primaryKey"`
	ClientID   string    `gorm:"uniqueIndex;size:64;not null"`
	Score      int       `gorm:"not null"`
	Level      string    `gorm:"size:16;index;not null"`
	AssessedAt time.Time `gorm:"not null"`
	NextReview time.Time `gorm:"not null"`
	Escalation bool      `gorm:"not null"`
	Payload    string    `gorm:"type:json;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 指定表名
func (AssessmentRecord) TableName() string { return "risk_assessments" }

// AlertRecord 告警表，随评估写入，供按优先级检索
type AlertRecord struct {
	ID             uint      `gorm:"primaryKey"`
	AlertID        string    `gorm:"uniqueIndex;size:32;not null"`
	ClientID       string    `gorm:"index;size:64;not null"`
	Type           string    `gorm:"size:32;not null"`
	Title          string    `gorm:"size:128;not null"`
	Description    string    `gorm:"size:512"`
	Priority       string    `gorm:"size:16;index;not null"`
	PriorityRank   int       `gorm:"index;not null"`
	DetectedValue  float64   `gorm:"not null"`
	Threshold      float64   `gorm:"not null"`
	RequiredAction string    `gorm:"size:256;not null"`
	RequiresFiling bool      `gorm:"not null"`
	DeadlineDays   int       `gorm:"not null"`
	Deadline       time.Time `gorm:"not null"`
	GeneratedAt    time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定表名
func (AlertRecord) TableName() string { return "risk_alerts" }

// GormAssessmentRepository 基于 gorm 的评估仓储
type GormAssessmentRepository struct {
	db *gorm.DB
}

// NewGormAssessmentRepository 构造仓储
func NewGormAssessmentRepository(db *gorm.DB) *GormAssessmentRepository {
	return &GormAssessmentRepository{db: db}
}

// AutoMigrate 建表
func (r *GormAssessmentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&AssessmentRecord{}, &AlertRecord{})
}

// Save 以客户为键幂等落库：评估整体覆盖，告警先删后插保持与最新评估一致
func (r *GormAssessmentRepository) Save(ctx context.Context, a domain.RiskAssessment) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	record := AssessmentRecord{
		ClientID:   a.ClientID,
		Score:      a.Score.Total,
		Level:      string(a.Level),
		AssessedAt: a.AssessedAt,
		NextReview: a.NextReview,
		Escalation: a.Escalation,
		Payload:    string(payload),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "level", "assessed_at", "next_review", "escalation", "payload", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", a.ClientID).Delete(&AlertRecord{}).Error; err != nil {
			return err
		}
		for _, alert := range a.Alerts {
			rec := AlertRecord{
				AlertID:        alert.ID,
				ClientID:       alert.ClientID,
				Type:           string(alert.Type),
				Title:          alert.Title,
				Description:    alert.Description,
				Priority:       string(alert.Priority),
				PriorityRank:   alert.Priority.Rank(),
				DetectedValue:  alert.DetectedValue,
				Threshold:      alert.Threshold,
				RequiredAction: alert.RequiredAction,
				RequiresFiling: alert.RequiresFiling,
				DeadlineDays:   alert.DeadlineDays,
				Deadline:       alert.Deadline,
				GeneratedAt:    alert.CreatedAt,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByClient 查询客户最新评估
func (r *GormAssessmentRepository) FindByClient(ctx context.Context, clientID string) (domain.RiskAssessment, error) {
	var record AssessmentRecord
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RiskAssessment{}, fmt.Errorf("%w: client %s", domain.ErrAssessmentNotFound, clientID)
	}
	if err != nil {
		return domain.RiskAssessment{}, err
	}
	return decodeAssessment(record)
}

// FindAll 返回全部客户的最新评估
func (r *GormAssessmentRepository) FindAll(ctx context.Context) ([]domain.RiskAssessment, error) {
	var records []AssessmentRecord
	if err := r.db.WithContext(ctx).Order("client_id").Find(&records).Error; err != nil {
		return nil, err
	}
	assessments := make([]domain.RiskAssessment, 0, len(records))
	for _, record := range records {
		a, err := decodeAssessment(record)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// FindAlerts 按最低优先级检索告警
func (r *GormAssessmentRepository) FindAlerts(ctx context.Context, minPriority domain.AlertPriority) ([]domain.Alert, error) {
	var records []AlertRecord
	err := r.db.WithContext(ctx).
		Where("priority_rank >= ?", minPriority.Rank()).
		Order("priority_rank DESC, generated_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	alerts := make([]domain.Alert, 0, len(records))
	for _, rec := range records {
		alerts = append(alerts, domain.Alert{
			ID:             rec.AlertID,
			ClientID:       rec.ClientID,
			Type:           domain.AlertType(rec.Type),
			Title:          rec.Title,
			Description:    rec.Description,
			Priority:       domain.AlertPriority(rec.Priority),
			DetectedValue:  rec.DetectedValue,
			Threshold:      rec.Threshold,
			RequiredAction: rec.RequiredAction,
			RequiresFiling: rec.RequiresFiling,
			DeadlineDays:   rec.DeadlineDays,
			Deadline:       rec.Deadline,
			CreatedAt:      rec.GeneratedAt,
		})
	}
	return alerts, nil
}

// decodeAssessment 从 JSON 载荷还原评估聚合
func decodeAssessment(record AssessmentRecord) (domain.RiskAssessment, error) {
	var a domain.RiskAssessment
	if err := json.Unmarshal([]byte(record.Payload), &a); err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("decode assessment for %s: %w", record.ClientID, err)
	}
	return a, nil
}
