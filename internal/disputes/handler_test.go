package disputes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newDisputesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:tester")
		c.Next()
	})
	NewHandler(newTestService()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDisputesHandler_SaveAndFetch(t *testing.T) {
	r := newDisputesRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/disputes",
		`{"reportId":"rep-1","itemId":"acct-9","itemKind":"account","bureaus":["TransUnion"],"reason":"Not mine","instruction":"Delete this tradeline."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var saved Dispute
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.ID == "" || saved.Status != StatusDraft {
		t.Fatalf("unexpected dispute: %+v", saved)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/disputes/"+saved.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/disputes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []Dispute
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one dispute, got %d", len(list))
	}
}

func TestDisputesHandler_SaveValidation(t *testing.T) {
	r := newDisputesRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/disputes", `{"itemId":"acct-9"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_error") {
		t.Fatalf("expected validation_error, got %s", w.Body.String())
	}
}

func TestDisputesHandler_StatusAndDelete(t *testing.T) {
	r := newDisputesRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/disputes",
		`{"itemId":"acct-9","reason":"Not mine","instruction":"Delete."}`)
	var saved Dispute
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPut, "/api/v1/disputes/"+saved.ID+"/status", `{"status":"submitted"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/v1/disputes/"+saved.ID+"/status", `{"status":"mailed"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/v1/disputes/"+saved.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/disputes/"+saved.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestDisputesHandler_Templates(t *testing.T) {
	r := newDisputesRouter()

	w := doJSON(t, r, http.MethodGet, "/api/v1/dispute-templates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var templates []Template
	if err := json.Unmarshal(w.Body.Bytes(), &templates); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(templates) != len(BuiltinTemplates()) {
		t.Fatalf("expected built-ins only, got %d", len(templates))
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/dispute-templates",
		`{"category":"FCRA","reason":"Obsolete","instruction":"Delete under FCRA 605."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/v1/dispute-templates/"+BuiltinTemplates()[0].ID, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for built-in delete, got %d", w.Code)
	}
}
