package reports

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newReportsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:tester")
		c.Next()
	})
	svc := NewService(NewMemoryRepo(), newFakeStore("text/plain"))
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestReportsHandler_CreateAndGet(t *testing.T) {
	r := newReportsRouter()

	body := `{"CREDIT_LIABILITY":[{"CreditLiabilityID":"a1"}],"INQUIRY":[{"SubscriberName":"Acme"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Report
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.AccountCount != 1 || created.InquiryCount != 1 {
		t.Fatalf("unexpected counts: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReportsHandler_CreateRejectsEmptyPayload(t *testing.T) {
	r := newReportsRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReportsHandler_ImportMultipart(t *testing.T) {
	r := newReportsRouter()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fw, err := writer.CreateFormFile("file", "report.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("TransUnion Credit Report")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created Report
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Source != SourceUpload || created.FileName != "report.txt" {
		t.Fatalf("unexpected report: %+v", created)
	}
}

func TestReportsHandler_ImportRequiresFile(t *testing.T) {
	r := newReportsRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
