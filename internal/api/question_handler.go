package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"careerhub/internal/api/middleware"
	"careerhub/internal/domain"
	"careerhub/internal/store"
)

// QuestionHandler 负责处理面试题库相关的 API 请求。前台流程只读，
// Create 留给种子/后台路径。
type QuestionHandler struct {
	questions store.Questions
}

// NewQuestionHandler 构造 QuestionHandler。
func NewQuestionHandler(questions store.Questions) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// ListQuestions 返回满足筛选条件的面试题。search 在题目、分类与标签上
// 做大小写不敏感匹配；category 与 difficulty 为精确筛选，"all" 表示不限。
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	f := domain.QuestionFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}
	questions, err := h.questions.List(c.Request.Context(), f)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list questions failed", slog.Any("error", err))
		c.JSON(http.StatusOK, []domain.Question{})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestion 返回指定 ID 的面试题。
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid question id")
		return
	}
	question, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "failed to query question")
		return
	}
	c.JSON(http.StatusOK, question)
}

type createQuestionRequest struct {
	Question     string   `json:"question" binding:"required"`
	Category     string   `json:"category"`
	Difficulty   string   `json:"difficulty"`
	KeyPoints    []string `json:"keyPoints"`
	SampleAnswer string   `json:"sampleAnswer"`
	Tips         []string `json:"tips"`
	Tags         []string `json:"tags"`
}

// CreateQuestion 新增一道面试题。
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	created, err := h.questions.Create(c.Request.Context(), domain.Question{
		Question:     req.Question,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		KeyPoints:    req.KeyPoints,
		SampleAnswer: req.SampleAnswer,
		Tips:         req.Tips,
		Tags:         req.Tags,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("create question failed", slog.Any("error", err))
		Internal(c, "failed to create question")
		return
	}
	c.JSON(http.StatusCreated, created)
}
