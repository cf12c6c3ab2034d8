package domain

import "errors"

var (
	// ErrInvalidMetrics 行为指标违反输入契约（字段超出定义域）
	ErrInvalidMetrics = errors.New("invalid behavioral metrics")
	// ErrScoreOutOfRange 分数超出 [0,100]，属于调用方编程错误
	ErrScoreOutOfRange = errors.New("score out of range")
	// ErrInvalidConfig 引擎配置非法，必须在分析任何客户之前拒绝
	ErrInvalidConfig = errors.New("invalid engine configuration")
	// ErrAssessmentNotFound 评估结果不存在
	ErrAssessmentNotFound = errors.New("assessment not found")
)
