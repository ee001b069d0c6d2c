package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/handler"
	"github.com/EgehanKilicarslan/quicknote/internal/middleware"
	"github.com/EgehanKilicarslan/quicknote/internal/web"
)

// Observability bundles the metrics collectors and the registry they are exposed from
type Observability struct {
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
}

// NewObservability registers the HTTP metrics on a fresh registry
func NewObservability() *Observability {
	reg := prometheus.NewRegistry()
	return &Observability{
		Metrics:  middleware.NewMetrics(reg),
		Gatherer: reg,
	}
}

func SetupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	pageHandler *handler.PageHandler,
	authHandler *handler.AuthHandler,
	noteHandler *handler.NoteHandler,
	authMiddleware *middleware.AuthMiddleware,
	obs *Observability,
) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := web.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetTrustedProxies(nil)
	r.SetHTMLTemplate(templates)

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("❌ [Router] Panic recovered", "error", recovered, "path", c.Request.URL.Path)
		web.RenderError(c, http.StatusInternalServerError)
	}))
	r.Use(obs.Metrics.Handler())
	r.Use(web.CookieDefaults(cfg.IsProduction()))
	r.Use(authMiddleware.LoadSession())
	r.Use(middleware.RequestLogger(logger))

	// Operational probes
	r.GET("/health", pageHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))

	// Public pages
	r.GET("/", pageHandler.Index)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	// Pages that need a logged in user
	protected := r.Group("/")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/notes", noteHandler.List)
		protected.POST("/notes", noteHandler.Create)
		protected.GET("/notes/delete", noteHandler.Delete)
	}

	r.NoRoute(pageHandler.NotFound)

	return r, nil
}
