// Package testutil provides shared fixtures for package tests: an in-memory
// database with the real migrations, a test configuration and mocks.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/database"
)

// SetupTestDB creates a new in-memory SQLite database with all migrations applied
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, dialect, err := database.Open("sqlite:///:memory:", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, dialect))

	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// TestConfig returns a valid configuration with cheap password hashing
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:                    "test",
		LogLevel:                  slog.LevelError,
		ApiServicePort:            "5000",
		DatabaseURL:               "sqlite:///:memory:",
		SecretKey:                 "test-secret-key",
		SessionExpiration:         3600,
		SessionRememberExpiration: 86400,
		SessionCleanupInterval:    60,
		PasswordHashIterations:    1000,
		NotesListScope:            config.ListScopeOwner,
		RedisPort:                 6379,
		LoginMaxAttempts:          3,
		LoginWindow:               60,
	}
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
