package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/quicknote/internal/web"
)

// Pinger checks the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PageHandler serves the landing page, health probe and fallback errors
type PageHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(db Pinger, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		db:     db,
		logger: logger,
	}
}

// Index renders the landing page
func (h *PageHandler) Index(c *gin.Context) {
	web.Render(c, http.StatusOK, "index.html", nil)
}

// NotFound renders the 404 page for unmatched routes
func (h *PageHandler) NotFound(c *gin.Context) {
	web.RenderError(c, http.StatusNotFound)
}

// Health reports whether the service and its database are up
func (h *PageHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("❌ [Handler] Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
