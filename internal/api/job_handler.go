package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"careerhub/internal/api/middleware"
	"careerhub/internal/domain"
	"careerhub/internal/store"
)

// JobHandler 负责处理职位列表相关的 API 请求。
type JobHandler struct {
	jobs store.Jobs
}

// NewJobHandler 构造 JobHandler。
func NewJobHandler(jobs store.Jobs) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// jobFilterFromQuery maps the search query string onto the filter facets.
// Unknown query parameters are ignored.
func jobFilterFromQuery(c *gin.Context) domain.JobFilter {
	f := domain.JobFilter{
		Search:   c.Query("search"),
		Title:    c.Query("title"),
		Location: c.Query("location"),
	}
	if raw := c.Query("industries"); raw != "" {
		f.Industries = domain.SplitList(raw, ",")
	}
	if raw := c.Query("salary_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			f.SalaryMin = v
		}
	}
	if raw := c.Query("salary_max"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			f.SalaryMax = v
		}
	}
	return f
}

// ListJobs 返回满足全部筛选条件的职位。读路径失败时降级为空列表。
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context(), jobFilterFromQuery(c))
	if err != nil {
		middleware.LoggerFromContext(c).Error("list jobs failed", slog.Any("error", err))
		c.JSON(http.StatusOK, []domain.Job{})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob 返回指定 ID 的职位。
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "failed to query job")
		return
	}
	c.JSON(http.StatusOK, job)
}

type createJobRequest struct {
	Title               string              `json:"title" binding:"required"`
	Company             string              `json:"company" binding:"required"`
	Location            string              `json:"location"`
	Industry            string              `json:"industry"`
	Salary              *domain.SalaryRange `json:"salary"`
	Description         string              `json:"description"`
	Requirements        []string            `json:"requirements"`
	ApplicationDeadline *time.Time          `json:"applicationDeadline"`
}

// CreateJob 保存一条新的职位记录。面向后台导入流程，前台不调用。
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	job := domain.Job{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Industry:     req.Industry,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = *req.ApplicationDeadline
	}

	created, err := h.jobs.Create(c.Request.Context(), job)
	if err != nil {
		middleware.LoggerFromContext(c).Error("create job failed", slog.Any("error", err))
		Internal(c, "failed to create job")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateJob 合并请求中显式给出的字段，其余字段保持不变。
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}

	var patch domain.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.jobs.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeStoreError(c, err, "failed to update job")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteJob 删除指定职位。
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid job id")
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		writeStoreError(c, err, "failed to delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
