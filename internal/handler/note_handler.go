package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/EgehanKilicarslan/quicknote/internal/database/service"
	"github.com/EgehanKilicarslan/quicknote/internal/form"
	"github.com/EgehanKilicarslan/quicknote/internal/web"
)

const MsgNoteNotFound = "That note does not exist."

// NoteHandler handles the notes page and note deletion
type NoteHandler struct {
	service service.NoteService
	logger  *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

// List renders the note list
func (h *NoteHandler) List(c *gin.Context) {
	h.render(c, http.StatusOK, &form.NoteForm{}, form.Errors{})
}

// Create adds a note for the current user and re-renders the list
func (h *NoteHandler) Create(c *gin.Context) {
	var req form.NoteForm
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		h.logger.Warn("⚠️ [Handler] Unreadable note form", "error", err)
	}

	if errs := req.Validate(); !errs.Valid() {
		h.render(c, http.StatusUnprocessableEntity, &req, errs)
		return
	}

	userID := web.Current(c).UserID()
	if _, err := h.service.CreateNote(c.Request.Context(), userID, req.Title, req.Content); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.render(c, http.StatusOK, &form.NoteForm{}, form.Errors{})
}

// Delete removes the note named by the id query parameter
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || noteID == 0 {
		web.AddFlash(c, web.FlashWarning, MsgNoteNotFound)
		c.Redirect(http.StatusFound, "/notes")
		return
	}

	userID := web.Current(c).UserID()
	if err := h.service.DeleteNote(c.Request.Context(), userID, uint(noteID)); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			web.AddFlash(c, web.FlashWarning, MsgNoteNotFound)
			c.Redirect(http.StatusFound, "/notes")
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/notes")
}

func (h *NoteHandler) render(c *gin.Context, status int, f *form.NoteForm, errs form.Errors) {
	notes, err := h.service.ListNotes(c.Request.Context(), web.Current(c).UserID())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	web.Render(c, status, "notes.html", gin.H{
		"Title":  "Notes",
		"Notes":  notes,
		"Form":   f,
		"Errors": errs,
	})
}

// handleServiceError maps service errors to error pages
func (h *NoteHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		web.RenderError(c, http.StatusForbidden)
	case errors.Is(err, service.ErrNoteNotFound):
		web.RenderError(c, http.StatusNotFound)
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		web.RenderError(c, http.StatusInternalServerError)
	}
}
