package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"careerhub/internal/api/middleware"
	"careerhub/internal/domain"
	"careerhub/internal/store"
)

const presignedURLTTL = 15 * time.Minute

// pdfMagic 是 PDF 文件头，上传内容必须以它开始。
var pdfMagic = []byte("%PDF-")

// ResumeStorage 抽象简历文件所需的对象存储操作，便于测试替换。
type ResumeStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// ResumeHandler 负责处理简历文件的上传、下载与默认简历管理。
type ResumeHandler struct {
	resumes          store.Resumes
	storage          ResumeStorage
	redis            redis.UniversalClient
	clamdAddr        string
	maxBytes         int64
	maxUploadsPerDay int
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(resumes store.Resumes, storageClient ResumeStorage, redisClient redis.UniversalClient, clamdAddr string, maxBytes int64, maxUploadsPerDay int) *ResumeHandler {
	return &ResumeHandler{
		resumes:          resumes,
		storage:          storageClient,
		redis:            redisClient,
		clamdAddr:        clamdAddr,
		maxBytes:         maxBytes,
		maxUploadsPerDay: maxUploadsPerDay,
	}
}

// ListResumes 列出全部简历。读路径失败时降级为空列表。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	resumes, err := h.resumes.List(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list resumes failed", slog.Any("error", err))
		c.JSON(http.StatusOK, []domain.Resume{})
		return
	}
	c.JSON(http.StatusOK, resumes)
}

// UploadResume 处理简历上传：仅接受单个 PDF，限制大小，入库前做病毒
// 扫描（未配置 clamd 时跳过）。首个简历自动成为默认简历。
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	if h.maxUploadsPerDay > 0 && h.redis != nil {
		count, err := incrWithTTL(ctx, h.redis, uploadRateKey(userID, time.Now()), 24*time.Hour)
		if err != nil {
			logger.Error("upload rate counter failed", slog.Any("error", err))
		} else if count > int64(h.maxUploadsPerDay) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily upload limit reached"})
			return
		}
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > h.maxBytes {
		BadRequest(c, fmt.Sprintf("file exceeds %d bytes", h.maxBytes))
		return
	}
	if !strings.EqualFold(file.Header.Get("Content-Type"), "application/pdf") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		BadRequest(c, "only PDF files are accepted")
		return
	}

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	content, err := io.ReadAll(fileReader)
	fileReader.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}
	if !bytes.HasPrefix(content, pdfMagic) {
		BadRequest(c, "only PDF files are accepted")
		return
	}

	if h.clamdAddr != "" {
		if err := h.scanContent(content); err != nil {
			logger.Warn("rejected resume upload", slog.Any("error", err))
			BadRequest(c, "malicious file detected")
			return
		}
	}

	objectKey := fmt.Sprintf("resumes/%d/%s.pdf", userID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(content), int64(len(content)), "application/pdf"); err != nil {
		logger.Error("upload resume file failed", slog.Any("error", err))
		Internal(c, "failed to upload file")
		return
	}

	created, err := h.resumes.Create(ctx, domain.Resume{
		Name:    file.Filename,
		FileKey: objectKey,
	})
	if err != nil {
		logger.Error("create resume record failed", slog.Any("error", err))
		// 记录已传文件，回收对象避免孤儿。
		if cleanupErr := h.storage.DeleteObject(ctx, objectKey); cleanupErr != nil {
			logger.Error("cleanup orphan object failed", slog.Any("error", cleanupErr))
		}
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ResumeHandler) scanContent(content []byte) error {
	clamdClient := clamd.NewClamd(h.clamdAddr)
	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := clamdClient.ScanStream(bytes.NewReader(content), abortChan)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return fmt.Errorf("scan verdict %s", result.Status)
		}
	}
	return nil
}

// DeleteResume 删除一份简历及其文件。历史申请中记录的简历名称不受影响。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	resume, err := h.resumes.Get(ctx, id)
	if err != nil {
		writeStoreError(c, err, "failed to query resume")
		return
	}
	if err := h.resumes.Delete(ctx, id); err != nil {
		writeStoreError(c, err, "failed to delete resume")
		return
	}
	if err := h.storage.DeleteObject(ctx, resume.FileKey); err != nil {
		middleware.LoggerFromContext(c).Error("delete resume object failed", slog.Any("error", err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetDefaultResume 将指定简历设为默认，返回更新后的完整列表。
func (h *ResumeHandler) SetDefaultResume(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}
	resumes, err := h.resumes.SetDefault(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err, "failed to set default resume")
		return
	}
	c.JSON(http.StatusOK, resumes)
}

// GetDownloadLink 生成简历文件的限时下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		BadRequest(c, "invalid resume id")
		return
	}

	ctx := c.Request.Context()
	resume, err := h.resumes.Get(ctx, id)
	if err != nil {
		writeStoreError(c, err, "failed to query resume")
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, resume.FileKey, presignedURLTTL)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign resume url failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int(presignedURLTTL.Seconds())})
}
