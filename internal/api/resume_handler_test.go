package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"careerhub/internal/domain"
)

type fakeStorage struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: map[string][]byte{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return &minio.UploadInfo{}, nil
}

func (s *fakeStorage) GeneratePresignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	delete(s.uploaded, objectKey)
	return nil
}

func newMultipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadResumeStoresPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemStore(t)
	storage := newFakeStorage()
	h := NewResumeHandler(st.Resumes, storage, nil, "", 5*1024*1024, 0)

	body, contentType := newMultipartUpload(t, "my-resume.pdf", []byte("%PDF-1.7 test"))
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("userID", uint(1))

	h.UploadResume(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	created := decodeBody[domain.Resume](t, w)
	if created.Name != "my-resume.pdf" {
		t.Fatalf("unexpected resume name %q", created.Name)
	}
	if !created.IsDefault {
		t.Fatal("first upload must become the default resume")
	}
	if !strings.HasPrefix(created.FileKey, "resumes/1/") {
		t.Fatalf("object key must be namespaced by user, got %q", created.FileKey)
	}
	if _, ok := storage.uploaded[created.FileKey]; !ok {
		t.Fatalf("file not uploaded under %q", created.FileKey)
	}
}

func TestUploadResumeRejectsNonPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemStore(t)
	storage := newFakeStorage()
	h := NewResumeHandler(st.Resumes, storage, nil, "", 5*1024*1024, 0)

	cases := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"wrong extension", "resume.docx", []byte("%PDF-1.7")},
		{"wrong magic bytes", "resume.pdf", []byte("MZ fake executable")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := newMultipartUpload(t, tc.filename, tc.content)
			req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
			req.Header.Set("Content-Type", contentType)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			c.Set("userID", uint(1))

			h.UploadResume(c)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			if len(storage.uploaded) != 0 {
				t.Fatal("rejected file must not reach storage")
			}
		})
	}
}

func TestUploadResumeRequiresAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemStore(t)
	h := NewResumeHandler(st.Resumes, newFakeStorage(), nil, "", 5*1024*1024, 0)

	body, contentType := newMultipartUpload(t, "resume.pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	// no userID in context

	h.UploadResume(c)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestDeleteResumeRemovesObject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemStore(t)
	storage := newFakeStorage()
	h := NewResumeHandler(st.Resumes, storage, nil, "", 5*1024*1024, 0)

	created, err := st.Resumes.Create(context.Background(), domain.Resume{
		Name: "resume.pdf", FileKey: "resumes/1/abc.pdf",
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	storage.uploaded[created.FileKey] = []byte("%PDF-")

	req := httptest.NewRequest(http.MethodDelete, "/v1/resumes/1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.DeleteResume(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != created.FileKey {
		t.Fatalf("stored object not removed: %v", storage.deleted)
	}
}

func TestGetDownloadLink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newMemStore(t)
	h := NewResumeHandler(st.Resumes, newFakeStorage(), nil, "", 5*1024*1024, 0)

	if _, err := st.Resumes.Create(context.Background(), domain.Resume{
		Name: "resume.pdf", FileKey: "resumes/1/abc.pdf",
	}); err != nil {
		t.Fatalf("seed resume: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/1/download-link", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.GetDownloadLink(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	link := decodeBody[map[string]any](t, w)
	url, _ := link["url"].(string)
	if !strings.Contains(url, "resumes/1/abc.pdf") {
		t.Fatalf("unexpected link payload %v", link)
	}
}
