package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gearcheck/backend/internal/domain"
	"github.com/gearcheck/backend/internal/infrastructure/scripts"
	"github.com/gearcheck/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	checklist *usecase.ChecklistService
	log       *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(checklist *usecase.ChecklistService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{checklist: checklist, log: log}
}

// UpdateItemRequest is the body of POST /api/update-item.
type UpdateItemRequest struct {
	ItemKey string  `json:"item_key" binding:"required"`
	Checked bool    `json:"checked"`
	Notes   *string `json:"notes"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gearcheck-backend",
		"version": "1.0.0",
	})
}

// Status reports whether a checklist is loaded and its summary counts.
func (h *Handler) Status(c *gin.Context) {
	state, err := h.checklist.Status(c.Request.Context())
	if errors.Is(err, domain.ErrNoChecklist) {
		c.JSON(http.StatusOK, gin.H{
			"has_checklist": false,
			"message":       "No checklist loaded. Upload files to analyze.",
		})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_checklist":  true,
		"inventory_file": state.InventoryFile,
		"lua_files":      state.ScriptFiles,
		"total_items":    state.TotalItems,
		"checked_count":  state.CheckedCount,
		"created_at":     state.CreatedAt,
		"updated_at":     state.UpdatedAt,
	})
}

// GetChecklist returns the full checklist grouped by container.
func (h *Handler) GetChecklist(c *gin.Context) {
	view, err := h.checklist.Checklist(c.Request.Context())
	if errors.Is(err, domain.ErrNoChecklist) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No checklist loaded"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateItem sets one checklist item's checked state and notes.
func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	state, err := h.checklist.UpdateItem(c.Request.Context(), req.ItemKey, req.Checked, req.Notes)
	switch {
	case errors.Is(err, domain.ErrNoChecklist):
		c.JSON(http.StatusNotFound, gin.H{"detail": "No checklist loaded"})
		return
	case errors.Is(err, domain.ErrItemNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"checked_count": state.CheckedCount,
	})
}

// Analyze accepts an inventory CSV and one or more lua files, runs the
// orphan analysis, and replaces the stored checklist. Files are analyzed
// in memory and discarded.
func (h *Handler) Analyze(c *gin.Context) {
	invHeader, err := c.FormFile("inventory_csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "inventory_csv file is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	luaHeaders := form.File["lua_files"]
	if len(luaHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "at least one lua file is required"})
		return
	}

	sources := make([]domain.ScriptSource, 0, len(luaHeaders))
	for _, header := range luaHeaders {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": fmt.Sprintf("Error reading lua file %q: %v", header.Filename, err),
			})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": fmt.Sprintf("Error reading lua file %q: %v", header.Filename, err),
			})
			return
		}
		sources = append(sources, domain.ScriptSource{
			Name: header.Filename,
			Text: scripts.Decode(data),
		})
	}

	invFile, err := invHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error reading inventory CSV: %v", err),
		})
		return
	}
	defer invFile.Close()

	summary, err := h.checklist.Analyze(c.Request.Context(), sources, invFile, invHeader.Filename)
	if errors.Is(err, domain.ErrMalformedRow) || errors.Is(err, domain.ErrSourceUnreadable) {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error parsing inventory CSV: %v", err),
		})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"gearswap_items":  summary.GearswapItems,
		"inventory_items": summary.InventoryItems,
		"orphaned_items":  summary.OrphanedItems,
	})
}

// Export downloads the checklist state as JSON.
func (h *Handler) Export(c *gin.Context) {
	data, err := h.checklist.ExportJSON(c.Request.Context())
	if errors.Is(err, domain.ErrNoChecklist) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No checklist loaded"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	filename := fmt.Sprintf("orphan_checklist_export_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ExportCSV downloads the checklist state as CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	data, err := h.checklist.ExportCSV(c.Request.Context())
	if errors.Is(err, domain.ErrNoChecklist) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No checklist loaded"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	filename := fmt.Sprintf("orphan_checklist_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// Report returns the text report of the current checklist.
func (h *Handler) Report(c *gin.Context) {
	text, err := h.checklist.Report(c.Request.Context())
	if errors.Is(err, domain.ErrNoChecklist) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "No checklist loaded"})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// LoadState replaces the checklist with a previously exported JSON document.
func (h *Handler) LoadState(c *gin.Context) {
	header, err := c.FormFile("state_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "state_file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Failed to load state: %v", err)})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Failed to load state: %v", err)})
		return
	}

	state, err := h.checklist.Import(c.Request.Context(), data)
	if errors.Is(err, domain.ErrInvalidState) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Failed to load state: %v", err)})
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"total_items":   state.TotalItems,
		"checked_count": state.CheckedCount,
	})
}

// Clear drops the current checklist.
func (h *Handler) Clear(c *gin.Context) {
	if err := h.checklist.Clear(c.Request.Context()); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.log.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}
