package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/quicknote/internal/database/service"
	"github.com/EgehanKilicarslan/quicknote/internal/web"
)

// AuthMiddleware resolves the session cookie into a web.RequestContext
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// LoadSession attaches the request identity. Missing, malformed or expired
// sessions degrade to an anonymous request; the stale cookie is cleared.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := &web.RequestContext{}
		web.Attach(c, rc)

		token, err := c.Cookie(web.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, session, err := m.service.ResolveSession(c.Request.Context(), token)
		switch {
		case err == nil:
			rc.User = user
			rc.Session = session
			m.logger.Debug("✅ [Middleware] Session resolved", "user_id", user.ID)
		case errors.Is(err, service.ErrInvalidSession):
			m.logger.Debug("⚠️ [Middleware] Discarding invalid session cookie")
			web.ClearCookie(c, web.SessionCookie)
		default:
			m.logger.Error("❌ [Middleware] Failed to resolve session", "error", err)
		}

		c.Next()
	}
}

// RequireAuth rejects anonymous requests with the 401 page
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !web.Current(c).Authenticated() {
			m.logger.Warn("⚠️ [Middleware] Unauthenticated request", "path", c.Request.URL.Path)
			web.RenderError(c, http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
