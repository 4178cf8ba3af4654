package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"careerhub/internal/api/middleware"
	"careerhub/internal/domain"
	"careerhub/internal/store"
)

// ApplicationHandler 负责处理求职申请相关的 API 请求。
type ApplicationHandler struct {
	applications store.Applications
	jobs         store.Jobs
}

// NewApplicationHandler 构造 ApplicationHandler。
func NewApplicationHandler(applications store.Applications, jobs store.Jobs) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, jobs: jobs}
}

// ListApplications 返回全部申请，可用 job_id 过滤。引用已删除职位的
// 申请不会出现在结果里。
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	if raw := c.Query("job_id"); raw != "" {
		jobID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || jobID == 0 {
			BadRequest(c, "invalid job_id")
			return
		}
		apps, err := h.applications.ListByJob(ctx, uint(jobID))
		if err != nil {
			logger.Error("list applications by job failed", slog.Any("error", err))
			c.JSON(http.StatusOK, []domain.Application{})
			return
		}
		c.JSON(http.StatusOK, apps)
		return
	}

	apps, err := h.applications.List(ctx)
	if err != nil {
		logger.Error("list applications failed", slog.Any("error", err))
		c.JSON(http.StatusOK, []domain.Application{})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetApplication 返回指定 ID 的申请。
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid application id")
		return
	}
	app, err := h.applications.Get(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "failed to query application")
		return
	}
	c.JSON(http.StatusOK, app)
}

type createApplicationRequest struct {
	JobID      uint   `json:"jobId" binding:"required"`
	ResumeUsed string `json:"resumeUsed"`
	Notes      string `json:"notes"`
}

// CreateApplication 提交一份新的申请。状态固定从 Applied 开始，申请时间
// 由存储层打点；目标职位必须存在。
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req createApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if _, err := h.jobs.Get(ctx, req.JobID); err != nil {
		writeStoreError(c, err, "failed to resolve job")
		return
	}

	created, err := h.applications.Create(ctx, domain.Application{
		JobID:      req.JobID,
		ResumeUsed: req.ResumeUsed,
		Notes:      req.Notes,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("create application failed", slog.Any("error", err))
		Internal(c, "failed to create application")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateApplication 合并请求中显式给出的字段。状态变更必须沿审核流水线
// 推进，否则返回 409。
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid application id")
		return
	}

	var patch domain.ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.applications.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeStoreError(c, err, "failed to update application")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// WithdrawApplication 撤回一份申请。仅当状态仍为 Applied 时允许。
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid application id")
		return
	}
	if err := h.applications.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "failed to withdraw application")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
