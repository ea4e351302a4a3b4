package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"creditdispute-backend/internal/shared/server/middleware"
	"creditdispute-backend/internal/shared/server/respond"
)

const maxImportSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the reports service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports", h.create)
	rg.POST("/reports/import", h.importFile)
	rg.GET("/reports", h.list)
	rg.GET("/reports/:id", h.get)
	rg.DELETE("/reports/:id", h.deleteReport)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var payload Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid report payload", nil)
		return
	}
	if len(payload.Accounts) == 0 && len(payload.PublicRecords) == 0 && len(payload.Inquiries) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "report payload has no sections", nil)
		return
	}

	rep, err := h.Svc.CreateFromPayload(c.Request.Context(), userID, payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save report", nil)
		return
	}
	c.Set("reportId", rep.ID)

	respond.JSON(c, http.StatusCreated, rep)
}

func (h *Handler) importFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	rep, err := h.Svc.ImportFile(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to import report", nil)
		return
	}
	c.Set("reportId", rep.ID)

	respond.JSON(c, http.StatusCreated, rep)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reports", nil)
		return
	}
	respond.OK(c, list)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	rep, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch report", nil)
		return
	}
	respond.OK(c, rep)
}

func (h *Handler) deleteReport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete report", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
