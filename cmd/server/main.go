package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/EgehanKilicarslan/quicknote/internal/api"
	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/database"
	"github.com/EgehanKilicarslan/quicknote/internal/database/repository"
	"github.com/EgehanKilicarslan/quicknote/internal/database/service"
	"github.com/EgehanKilicarslan/quicknote/internal/handler"
	"github.com/EgehanKilicarslan/quicknote/internal/logger"
	"github.com/EgehanKilicarslan/quicknote/internal/middleware"
	"github.com/EgehanKilicarslan/quicknote/internal/worker"
)

func serve(ctx context.Context, cmd *cli.Command) error {
	// 1. Config
	cfg := config.LoadConfig()
	if port := cmd.String("port"); port != "" {
		cfg.ApiServicePort = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting QuickNote...",
		"environment", cfg.AppEnv,
		"list_scope", cfg.NotesListScope,
	)

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	sessionStore := repository.NewSessionRepository(db)

	// 5. Redis backs sessions and login throttling when configured
	var limiter middleware.LoginLimiter
	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Warn("⚠️ Failed to connect to Redis", "error", err)
			appLogger.Info("💡 Sessions will be stored in the database")
		} else {
			defer redisClient.Close()
			sessionStore = redisClient
			limiter = middleware.NewLoginLimiter(redisClient.GetClient(), cfg, appLogger)
		}
	}
	if limiter == nil {
		limiter = middleware.NewNoOpLoginLimiter(appLogger)
	}
	defer limiter.Close()

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, sessionStore, cfg, appLogger)
	noteService := service.NewNoteService(noteRepo, cfg, appLogger)

	// 7. Initialize Handlers & Middleware
	pageHandler := handler.NewPageHandler(sqlDB, appLogger)
	authHandler := handler.NewAuthHandler(authService, limiter, appLogger)
	noteHandler := handler.NewNoteHandler(noteService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	r, err := api.SetupRouter(cfg, appLogger, pageHandler, authHandler, noteHandler, authMiddleware, api.NewObservability())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 8. Background workers
	pool := worker.NewPool(ctx, appLogger)
	pool.StartSessionSweeper(authService, time.Duration(cfg.SessionCleanupInterval)*time.Second)

	// 9. Start HTTP Server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("🛑 [Go] Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("❌ HTTP server shutdown error", "error", err)
		}

		pool.Shutdown(5 * time.Second)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	appLogger.Info("✅ [Go] Server stopped")
	return nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg := config.LoadConfig()
	appLogger := logger.New(cfg)

	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return database.Close(db)
}

func main() {
	cmd := &cli.Command{
		Name:   "quicknote",
		Usage:  "Multi-user note taking web application",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP port, overrides API_SERVICE_PORT",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Action: migrate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("❌ application error", "error", err)
		os.Exit(1)
	}
}
