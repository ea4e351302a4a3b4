package scan

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"creditdispute-backend/internal/shared/server/middleware"
	"creditdispute-backend/internal/shared/server/respond"
)

// Handler wires the scan endpoint to the orchestrator.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches scan routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai-scan", h.runScan)
}

func (h *Handler) runScan(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid scan payload", nil)
		return
	}

	mode := ParseMode(req.Mode)
	if raw := c.Query("mode"); raw != "" {
		mode = ParseMode(raw)
	}

	result, err := h.Svc.Scan(c.Request.Context(), userID, req, mode)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respond.Error(c, http.StatusRequestTimeout, "scan_cancelled", "scan cancelled before completion", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run scan", nil)
		return
	}

	respond.OK(c, result)
}
