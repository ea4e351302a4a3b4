package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"creditdispute-backend/internal/disputes"
	"creditdispute-backend/internal/reports"
)

func newClaimRouter(t *testing.T, svc *Service, userID string, guest bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", guest)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestClaimGuest_MovesReportsAndDisputes(t *testing.T) {
	guestID := "7b0c2a34-9f1e-4c1d-8a6a-3c1f4b2d9e01"
	guestUser := "guest:" + guestID

	reportRepo := reports.NewMemoryRepo()
	disputeRepo := disputes.NewMemoryRepo()
	ctx := context.Background()
	if err := reportRepo.Create(ctx, reports.Report{ID: "rep-1", UserID: guestUser}); err != nil {
		t.Fatalf("seed report: %v", err)
	}
	if err := disputeRepo.Create(ctx, disputes.Dispute{ID: "dsp-1", UserID: guestUser, ItemID: "account-1"}); err != nil {
		t.Fatalf("seed dispute: %v", err)
	}
	if err := disputeRepo.Create(ctx, disputes.Dispute{ID: "dsp-2", UserID: "someone-else", ItemID: "account-2"}); err != nil {
		t.Fatalf("seed dispute: %v", err)
	}

	r := newClaimRouter(t, NewService(reportRepo, disputeRepo), "google:123", false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res ClaimResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.MigratedReports != 1 || res.MigratedDisputes != 1 {
		t.Fatalf("result = %+v, want 1 report and 1 dispute", res)
	}

	if _, err := reportRepo.GetByID(ctx, "google:123", "rep-1"); err != nil {
		t.Fatalf("report not reassigned: %v", err)
	}
	if _, err := disputeRepo.GetByID(ctx, "someone-else", "dsp-2"); err != nil {
		t.Fatalf("unrelated dispute touched: %v", err)
	}
}

func TestClaimGuest_RequiresLogin(t *testing.T) {
	svc := NewService(reports.NewMemoryRepo(), disputes.NewMemoryRepo())
	r := newClaimRouter(t, svc, "guest:abc", true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", "7b0c2a34-9f1e-4c1d-8a6a-3c1f4b2d9e01")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestClaimGuest_ValidatesHeader(t *testing.T) {
	svc := NewService(reports.NewMemoryRepo(), disputes.NewMemoryRepo())
	r := newClaimRouter(t, svc, "google:123", false)

	for name, header := range map[string]string{"missing": "", "malformed": "not-a-uuid"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
			if header != "" {
				req.Header.Set("X-Guest-Id", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
		})
	}
}
