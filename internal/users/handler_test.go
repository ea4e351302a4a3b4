package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newUsersRouter(t *testing.T, userID string, guest bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	if err := repo.Upsert(context.Background(), User{
		ID:       "google:123",
		Email:    "pat@example.com",
		FullName: "Pat Example",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", guest)
		c.Next()
	})
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestMeReturnsProfile(t *testing.T) {
	r := newUsersRouter(t, "google:123", false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["email"] != "pat@example.com" || body["fullName"] != "Pat Example" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestMeRejectsGuests(t *testing.T) {
	r := newUsersRouter(t, "guest:abc", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestMeUnknownUser(t *testing.T) {
	r := newUsersRouter(t, "google:999", false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
