package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/quicknote/internal/config"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

var ErrUnsupportedDatabaseURL = errors.New("unsupported database url")

// Dialect describes how a DATABASE_URL maps onto gorm and goose
type Dialect struct {
	Name          string // goose dialect
	MigrationsDir string
	dialector     gorm.Dialector
}

// ParseDatabaseURL resolves the driver for a connection string. PostgreSQL urls
// are passed through; sqlite urls use the sqlite:///relative/path form.
func ParseDatabaseURL(databaseURL string) (*Dialect, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return &Dialect{
			Name:          "postgres",
			MigrationsDir: "migrations/postgres",
			dialector:     postgres.Open(databaseURL),
		}, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return nil, fmt.Errorf("%w: missing sqlite path in %q", ErrUnsupportedDatabaseURL, databaseURL)
		}
		return &Dialect{
			Name:          "sqlite3",
			MigrationsDir: "migrations/sqlite",
			dialector:     sqlite.Open(withForeignKeys(path)),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, databaseURL)
	}
}

func withForeignKeys(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// Open opens the database described by databaseURL without running migrations
func Open(databaseURL string, logLevel gormlogger.LogLevel) (*gorm.DB, *Dialect, error) {
	dialect, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(dialect.dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps :memory: databases shared.
	if dialect.Name == "sqlite3" {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return db, dialect, nil
}

// ConnectDatabase connects with retries and brings the schema up to date
func ConnectDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, dialect, err := connectWithRetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("✅ [Database] Database connection established", "dialect", dialect.Name)

	logger.Info("🔄 [Database] Running migrations...")
	if err := RunMigrations(db, dialect); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("✅ [Database] Migrations completed successfully")

	return db, nil
}

func connectWithRetry(cfg *config.Config, logger *slog.Logger) (*gorm.DB, *Dialect, error) {
	logLevel := gormlogger.Silent
	if cfg.LogLevel <= slog.LevelDebug {
		logLevel = gormlogger.Info
	}

	var (
		db      *gorm.DB
		dialect *Dialect
		err     error
	)
	maxRetries := 10
	retryDelay := 2 * time.Second

	logger.Info("🔌 [Database] Connecting...")

	for i := 0; i < maxRetries; i++ {
		db, dialect, err = Open(cfg.DatabaseURL, logLevel)
		if err == nil {
			return db, dialect, nil
		}
		if errors.Is(err, ErrUnsupportedDatabaseURL) {
			return nil, nil, err
		}

		if i < maxRetries-1 {
			logger.Warn("⏳ [Database] Connection failed, retrying...",
				"attempt", i+1,
				"max_retries", maxRetries,
				"retry_in", retryDelay,
				"error", err,
			)
			time.Sleep(retryDelay)
		}
	}

	return nil, nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations applies the embedded goose migrations for the dialect
func RunMigrations(gormDB *gorm.DB, dialect *Dialect) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect.Name); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, dialect.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	return nil
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
