package disputes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"creditdispute-backend/internal/shared/server/middleware"
	"creditdispute-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the disputes service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches dispute routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/disputes", h.saveDispute)
	rg.GET("/disputes", h.listDisputes)
	rg.GET("/disputes/:id", h.getDispute)
	rg.PUT("/disputes/:id", h.updateDispute)
	rg.PUT("/disputes/:id/status", h.updateStatus)
	rg.DELETE("/disputes/:id", h.deleteDispute)

	rg.GET("/dispute-templates", h.listTemplates)
	rg.POST("/dispute-templates", h.createTemplate)
	rg.DELETE("/dispute-templates/:id", h.deleteTemplate)
}

type saveDisputeRequest struct {
	ReportID       string   `json:"reportId"`
	ItemID         string   `json:"itemId" binding:"required"`
	ItemKind       string   `json:"itemKind"`
	Bureaus        []string `json:"bureaus"`
	Reason         string   `json:"reason" binding:"required"`
	Instruction    string   `json:"instruction" binding:"required"`
	SelectedFields []string `json:"selectedFields"`
}

func (h *Handler) saveDispute(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "itemId, reason and instruction are required", nil)
		return
	}

	d, err := h.Svc.Save(c.Request.Context(), userID, SaveInput{
		ReportID:       req.ReportID,
		ItemID:         req.ItemID,
		ItemKind:       req.ItemKind,
		Bureaus:        req.Bureaus,
		Reason:         req.Reason,
		Instruction:    req.Instruction,
		SelectedFields: req.SelectedFields,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save dispute", nil)
		return
	}
	c.Set("disputeId", d.ID)

	respond.OK(c, d)
}

func (h *Handler) listDisputes(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list disputes", nil)
		return
	}
	respond.OK(c, list)
}

func (h *Handler) getDispute(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	d, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "dispute not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch dispute", nil)
		return
	}
	respond.OK(c, d)
}

func (h *Handler) updateDispute(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "itemId, reason and instruction are required", nil)
		return
	}

	d, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), SaveInput{
		Bureaus:        req.Bureaus,
		Reason:         req.Reason,
		Instruction:    req.Instruction,
		SelectedFields: req.SelectedFields,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "dispute not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update dispute", nil)
		return
	}
	respond.OK(c, d)
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	d, err := h.Svc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "dispute not found", nil)
		case err.Error() == "invalid status":
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid status", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update dispute", nil)
		}
		return
	}
	respond.OK(c, d)
}

func (h *Handler) deleteDispute(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "dispute not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete dispute", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) listTemplates(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	templates, err := h.Svc.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list templates", nil)
		return
	}
	respond.OK(c, templates)
}

func (h *Handler) createTemplate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req struct {
		Category    string `json:"category"`
		Reason      string `json:"reason" binding:"required"`
		Instruction string `json:"instruction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "reason and instruction are required", nil)
		return
	}

	t, err := h.Svc.CreateTemplate(c.Request.Context(), userID, req.Category, req.Reason, req.Instruction)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create template", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, t)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.DeleteTemplate(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "template not found", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
