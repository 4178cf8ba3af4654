package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerhub/internal/api/middleware"
	"careerhub/internal/domain"
	"careerhub/internal/store"
)

// AlertHandler 负责处理职位订阅相关的 API 请求。
type AlertHandler struct {
	alerts store.Alerts
}

// NewAlertHandler 构造 AlertHandler。
func NewAlertHandler(alerts store.Alerts) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListAlerts 返回全部订阅。读路径失败时降级为空列表。
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.List(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list alerts failed", slog.Any("error", err))
		c.JSON(http.StatusOK, []domain.Alert{})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// GetAlert 返回指定 ID 的订阅。
func (h *AlertHandler) GetAlert(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid alert id")
		return
	}
	alert, err := h.alerts.Get(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "failed to query alert")
		return
	}
	c.JSON(http.StatusOK, alert)
}

type alertRequest struct {
	Name      string               `json:"name" binding:"required"`
	Filters   *domain.AlertFilters `json:"filters"`
	Frequency string               `json:"frequency"`
	IsActive  *bool                `json:"isActive"`
}

// CreateAlert 保存一条新的订阅。名称必填，频率默认 daily。
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	alert := domain.Alert{
		Name:      req.Name,
		Frequency: req.Frequency,
		IsActive:  true,
	}
	if req.Filters != nil {
		alert.Filters = *req.Filters
	}
	if req.IsActive != nil {
		alert.IsActive = *req.IsActive
	}

	created, err := h.alerts.Create(c.Request.Context(), alert)
	if err != nil {
		writeStoreError(c, err, "failed to create alert")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateAlert 合并请求中显式给出的字段。
func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid alert id")
		return
	}

	var patch domain.AlertPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.alerts.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeStoreError(c, err, "failed to update alert")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAlert 删除指定订阅。
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid alert id")
		return
	}
	if err := h.alerts.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "failed to delete alert")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleAlert 翻转订阅的启用状态。
func (h *AlertHandler) ToggleAlert(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid alert id")
		return
	}
	alert, err := h.alerts.ToggleActive(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "failed to toggle alert")
		return
	}
	c.JSON(http.StatusOK, alert)
}
