package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/EgehanKilicarslan/quicknote/internal/database/service"
	"github.com/EgehanKilicarslan/quicknote/internal/form"
	"github.com/EgehanKilicarslan/quicknote/internal/middleware"
	"github.com/EgehanKilicarslan/quicknote/internal/web"
)

// Flash messages shown by the auth pages
const (
	MsgAlreadySignedUp = "You've already signed up with that email, log in instead!"
	MsgRegistered      = "Successfully registered"
	MsgUnknownEmail    = "That email does not exist, please try again."
	MsgWrongPassword   = "Password incorrect, please try again."
	MsgTooManyAttempts = "Too many failed login attempts, please try again later."
)

// AuthHandler handles registration, login and logout pages
type AuthHandler struct {
	service service.AuthService
	limiter middleware.LoginLimiter
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, limiter middleware.LoginLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

// RegisterPage renders the empty sign-up form
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Register",
		"Form":   &form.RegisterForm{},
		"Errors": form.Errors{},
	})
}

// Register handles the sign-up form
func (h *AuthHandler) Register(c *gin.Context) {
	var req form.RegisterForm
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		h.logger.Warn("⚠️ [Handler] Unreadable registration form", "error", err)
	}

	if errs := req.Validate(); !errs.Valid() {
		req.Password = ""
		web.Render(c, http.StatusUnprocessableEntity, "register.html", gin.H{
			"Title":  "Register",
			"Form":   &req,
			"Errors": errs,
		})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			web.AddFlash(c, web.FlashWarning, MsgAlreadySignedUp)
			c.Redirect(http.StatusFound, "/login")
			return
		}
		h.handleServiceError(c, err)
		return
	}

	if !h.startSession(c, user.ID, true) {
		return
	}

	web.AddFlash(c, web.FlashInfo, MsgRegistered)
	c.Redirect(http.StatusFound, "/notes")
}

// LoginPage renders the empty sign-in form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "login.html", gin.H{
		"Title":  "Log In",
		"Form":   &form.LoginForm{Remember: true},
		"Errors": form.Errors{},
	})
}

// Login handles the sign-in form
func (h *AuthHandler) Login(c *gin.Context) {
	var req form.LoginForm
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		h.logger.Warn("⚠️ [Handler] Unreadable login form", "error", err)
	}

	if errs := req.Validate(); !errs.Valid() {
		req.Password = ""
		web.Render(c, http.StatusUnprocessableEntity, "login.html", gin.H{
			"Title":  "Log In",
			"Form":   &req,
			"Errors": errs,
		})
		return
	}

	ctx := c.Request.Context()

	// Limiter errors fail open
	if allowed, _ := h.limiter.Allow(ctx, req.Email); !allowed {
		h.logger.Warn("⚠️ [Handler] Login throttled", "email", req.Email)
		web.AddFlash(c, web.FlashError, MsgTooManyAttempts)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			h.limiter.RecordFailure(ctx, req.Email)
			web.AddFlash(c, web.FlashError, MsgUnknownEmail)
		case errors.Is(err, service.ErrIncorrectPassword):
			h.limiter.RecordFailure(ctx, req.Email)
			web.AddFlash(c, web.FlashError, MsgWrongPassword)
		default:
			h.handleServiceError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.limiter.Reset(ctx, req.Email)

	if !h.startSession(c, user.ID, req.Remember) {
		return
	}

	c.Redirect(http.StatusFound, "/notes")
}

// Logout ends the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(web.SessionCookie); err == nil && token != "" {
		if err := h.service.EndSession(c.Request.Context(), token); err != nil && !errors.Is(err, service.ErrInvalidSession) {
			h.logger.Error("❌ [Handler] Failed to end session", "error", err)
		}
	}

	web.ClearCookie(c, web.SessionCookie)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint, remember bool) bool {
	issued, err := h.service.StartSession(c.Request.Context(), userID, remember)
	if err != nil {
		h.handleServiceError(c, err)
		return false
	}

	web.SetCookie(c, web.SessionCookie, issued.Token, issued.MaxAge)
	return true
}

// handleServiceError maps unexpected service errors to the 500 page
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	h.logger.Error("❌ [Handler] Internal server error", "error", err)
	web.RenderError(c, http.StatusInternalServerError)
}
