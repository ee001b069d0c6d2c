package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
)

// RedisClient wraps the redis client and stores login sessions
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisClient{
		client: client,
		logger: logger,
	}, nil
}

// NewRedisClientForTesting creates a Redis client with a provided redis.Client (for testing)
func NewRedisClientForTesting(client *redis.Client, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// sessionKey generates a Redis key for a login session
func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create stores the session with a TTL matching its expiry
func (r *RedisClient) Create(ctx context.Context, session *models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to store session",
			"user_id", session.UserID,
			"error", err,
		)
		return err
	}

	r.logger.Debug("💾 [Redis] Stored session",
		"user_id", session.UserID,
		"ttl", ttl,
	)

	return nil
}

// Find loads a session; missing or expired keys yield ErrSessionNotFound
func (r *RedisClient) Find(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		r.logger.Error("❌ [Redis] Failed to get session", "error", err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to unmarshal session, discarding", "error", err)
		r.client.Del(ctx, sessionKey(id))
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// Delete removes a session
func (r *RedisClient) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		r.logger.Error("❌ [Redis] Failed to delete session", "error", err)
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	r.logger.Debug("🗑️ [Redis] Deleted session")
	return nil
}

// DeleteExpired is a no-op: Redis expires session keys through their TTL
func (r *RedisClient) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
