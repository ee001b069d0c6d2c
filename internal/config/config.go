package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Note listing scopes.
const (
	ListScopeOwner = "owner"
	ListScopeAll   = "all"
)

type Config struct {
	AppEnv                    string
	LogLevel                  slog.Level
	ApiServicePort            string
	DatabaseURL               string
	SecretKey                 string
	SessionExpiration         int64 // Transient session lifetime in seconds
	SessionRememberExpiration int64 // Remember-me session lifetime in seconds
	SessionCleanupInterval    int64 // Expired session sweep period in seconds
	PasswordHashIterations    int64
	NotesListScope            string
	RedisHost                 string
	RedisPort                 int64
	RedisPassword             string
	RedisDB                   int64
	LoginMaxAttempts          int64
	LoginWindow               int64 // Failed login window in seconds
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:                    getEnv("APP_ENV", "development"),                      // Default development
		LogLevel:                  getLogLevel(),                                         // Default INFO
		ApiServicePort:            getEnv("API_SERVICE_PORT", "5000"),                    // Default 5000
		DatabaseURL:               getEnv("DATABASE_URL", "sqlite:///notes.db"),          // Default local SQLite file
		SecretKey:                 getEnv("SECRET_KEY", ""),                              // Required
		SessionExpiration:         getEnvAsInt64("SESSION_EXPIRATION", 86400),            // Default 1 day
		SessionRememberExpiration: getEnvAsInt64("SESSION_REMEMBER_EXPIRATION", 31536000), // Default 365 days
		SessionCleanupInterval:    getEnvAsInt64("SESSION_CLEANUP_INTERVAL", 3600),       // Default 1 hour
		PasswordHashIterations:    getEnvAsInt64("PASSWORD_HASH_ITERATIONS", 600000),     // Default 600k
		NotesListScope:            strings.ToLower(getEnv("NOTES_LIST_SCOPE", ListScopeOwner)),
		RedisHost:                 getEnv("REDIS_HOST", ""), // Empty disables Redis
		RedisPort:                 getEnvAsInt64("REDIS_PORT", 6379),
		RedisPassword:             getEnv("REDIS_PASSWORD", ""),
		RedisDB:                   getEnvAsInt64("REDIS_DATABASE", 0),
		LoginMaxAttempts:          getEnvAsInt64("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:               getEnvAsInt64("LOGIN_WINDOW", 900), // Default 15 minutes
	}
}

// Validate reports configuration the server must not start with.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.SecretKey, validation.Required.Error("SECRET_KEY must be set")),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.ApiServicePort, validation.Required, validation.By(validPort)),
		validation.Field(&c.NotesListScope, validation.In(ListScopeOwner, ListScopeAll)),
		validation.Field(&c.SessionExpiration, validation.Min(int64(1))),
		validation.Field(&c.SessionRememberExpiration, validation.Min(int64(1))),
		validation.Field(&c.SessionCleanupInterval, validation.Min(int64(1))),
		validation.Field(&c.PasswordHashIterations, validation.Min(int64(1))),
		validation.Field(&c.LoginMaxAttempts, validation.Min(int64(1))),
		validation.Field(&c.LoginWindow, validation.Min(int64(1))),
	)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.AppEnv) == "production"
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the host:port pair of the Redis server.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func validPort(value interface{}) error {
	s, _ := value.(string)
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("must be a port number between 1 and 65535")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
