package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/domain"
)

// 事件主题
const (
	TopicAssessments = "risk.assessments"
	TopicAlerts      = "risk.alerts"
)

// KafkaConfig Kafka 连接配置
type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	MaxRetries   int      `mapstructure:"max_retries"`
	RetryBackoff int      `mapstructure:"retry_backoff"`
}

// KafkaEventPublisher 基于 Kafka 的事件发布器，消息键为客户 ID 保证同客户有序
type KafkaEventPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaEventPublisher 创建发布器
func NewKafkaEventPublisher(cfg KafkaConfig, logger *slog.Logger) *KafkaEventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxRetries,
		WriteBackoffMin:        time.Duration(cfg.RetryBackoff) * time.Millisecond,
		WriteBackoffMax:        time.Duration(cfg.RetryBackoff*10) * time.Millisecond,
	}
	return &KafkaEventPublisher{writer: writer, logger: logger}
}

// PublishAssessmentCreated 发布评估完成事件
func (p *KafkaEventPublisher) PublishAssessmentCreated(ctx context.Context, event domain.AssessmentCreatedEvent) error {
	return p.send(ctx, TopicAssessments, event.ClientID, event)
}

// PublishAlertGenerated 发布告警事件
func (p *KafkaEventPublisher) PublishAlertGenerated(ctx context.Context, event domain.AlertGeneratedEvent) error {
	return p.send(ctx, TopicAlerts, event.Alert.ClientID, event)
}

// Close 关闭底层 writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaEventPublisher) send(ctx context.Context, topic, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{Topic: topic, Key: []byte(key), Value: data}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "kafka publish failed", "topic", topic, "key", key, "error", err)
		return err
	}
	return nil
}

// NoopPublisher 空实现，单机或测试场景下关闭事件外发
type NoopPublisher struct{}

// PublishAssessmentCreated 丢弃事件
func (NoopPublisher) PublishAssessmentCreated(context.Context, domain.AssessmentCreatedEvent) error {
	return nil
}

// PublishAlertGenerated 丢弃事件
func (NoopPublisher) PublishAlertGenerated(context.Context, domain.AlertGeneratedEvent) error {
	return nil
}
