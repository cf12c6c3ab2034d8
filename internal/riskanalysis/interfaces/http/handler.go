package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/application"
	"github.com/wyfcoding/riskanalysis/internal/riskanalysis/domain"
)

// RiskAnalysisHandler 负责处理风险分析相关的 HTTP 请求
type RiskAnalysisHandler struct {
	svc *application.RiskAnalysisService
}

// NewRiskAnalysisHandler 创建 HTTP 处理器
func NewRiskAnalysisHandler(svc *application.RiskAnalysisService) *RiskAnalysisHandler {
	return &RiskAnalysisHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *RiskAnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/risk")
	{
		api.POST("/assessments", h.AnalyzeClient)
		api.POST("/assessments/batch", h.AnalyzeBatch)
		api.GET("/assessments/:client", h.GetAssessment)
		api.GET("/assessments/:client/report", h.GetReport)
		api.GET("/alerts", h.ListAlerts)
		api.GET("/portfolio/summary", h.PortfolioSummary)
	}
}

// analyzeRequest 单客户分析请求体
type analyzeRequest struct {
	Metrics      application.MetricsInput `json:"metrics" binding:"required"`
	BuildProfile bool                     `json:"build_profile"`
}

// batchRequest 批量分析请求体
type batchRequest struct {
	Clients      []application.MetricsInput `json:"clients" binding:"required"`
	BuildProfile bool                       `json:"build_profile"`
}

// AnalyzeClient 分析单个客户
func (h *RiskAnalysisHandler) AnalyzeClient(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	metrics, err := req.Metrics.ToDomain()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	assessment, err := h.svc.AnalyzeClient(c.Request.Context(), application.AnalyzeClientCommand{
		Metrics:      metrics,
		BuildProfile: req.BuildProfile,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMetrics) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to analyze client", "client_id", metrics.ClientID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, assessment)
}

// AnalyzeBatch 批量分析客户
func (h *RiskAnalysisHandler) AnalyzeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	clients := make([]domain.BehavioralMetrics, 0, len(req.Clients))
	for _, in := range req.Clients {
		m, err := in.ToDomain()
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		clients = append(clients, m)
	}

	result, err := h.svc.AnalyzeBatch(c.Request.Context(), application.AnalyzeBatchCommand{
		Clients:      clients,
		BuildProfile: req.BuildProfile,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to analyze batch", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, result)
}

// GetAssessment 查询客户最新评估
func (h *RiskAnalysisHandler) GetAssessment(c *gin.Context) {
	clientID := c.Param("client")

	assessment, err := h.svc.GetAssessment(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrAssessmentNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to get assessment", "client_id", clientID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, assessment)
}

// GetReport 生成客户评估的文本报告
func (h *RiskAnalysisHandler) GetReport(c *gin.Context) {
	clientID := c.Param("client")

	report, err := h.svc.RenderReport(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrAssessmentNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to render report", "client_id", clientID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	c.String(http.StatusOK, report)
}

// ListAlerts 按最低优先级过滤告警
func (h *RiskAnalysisHandler) ListAlerts(c *gin.Context) {
	minPriority := domain.AlertPriority(c.DefaultQuery("min_priority", string(domain.AlertPriorityLow)))
	if minPriority.Rank() == 0 && minPriority != domain.AlertPriorityLow {
		response.ErrorWithStatus(c, http.StatusBadRequest, "unknown priority "+string(minPriority), "")
		return
	}

	alerts, err := h.svc.ListAlerts(c.Request.Context(), minPriority)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list alerts", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, alerts)
}

// PortfolioSummary 汇总全部已评估客户
func (h *RiskAnalysisHandler) PortfolioSummary(c *gin.Context) {
	topN, err := strconv.Atoi(c.DefaultQuery("top_n", "0"))
	if err != nil || topN < 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "top_n must be a non-negative integer", "")
		return
	}

	summary, err := h.svc.PortfolioSummary(c.Request.Context(), topN)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to summarize portfolio", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, summary)
}
