package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EgehanKilicarslan/quicknote/internal/config"
)

// LoginLimiter throttles repeated failed logins for the same account
type LoginLimiter interface {
	// Allow reports whether another login attempt for key may proceed
	Allow(ctx context.Context, key string) (bool, error)

	// RecordFailure counts a failed attempt for key
	RecordFailure(ctx context.Context, key string) error

	// Reset clears the failure count after a successful login
	Reset(ctx context.Context, key string) error

	// Close releases the underlying connection
	Close() error
}

type redisLoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	logger      *slog.Logger
}

// NewLoginLimiter creates a Redis-based login limiter
func NewLoginLimiter(client *redis.Client, cfg *config.Config, logger *slog.Logger) LoginLimiter {
	logger.Info("✅ [RateLimiter] Login throttling enabled",
		"max_attempts", cfg.LoginMaxAttempts,
		"window", time.Duration(cfg.LoginWindow)*time.Second,
	)

	return &redisLoginLimiter{
		client:      client,
		maxAttempts: cfg.LoginMaxAttempts,
		window:      time.Duration(cfg.LoginWindow) * time.Second,
		logger:      logger,
	}
}

// loginKey generates the Redis key for a login failure counter
// Format: rate:login:{email}
func loginKey(key string) string {
	return fmt.Sprintf("rate:login:%s", strings.ToLower(key))
}

func (r *redisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, loginKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to get login failures", "error", err)
		// On error, allow the request but log it
		return true, err
	}

	return count < r.maxAttempts, nil
}

func (r *redisLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	k := loginKey(key)

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to record login failure", "error", err)
		return err
	}

	// The window starts at the first failure
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			r.logger.Error("❌ [RateLimiter] Failed to set failure window", "error", err)
			return err
		}
	}

	if count >= r.maxAttempts {
		r.logger.Warn("⚠️ [RateLimiter] Login attempts exhausted", "failures", count)
	}

	return nil
}

func (r *redisLoginLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, loginKey(key)).Err()
}

// Close is a no-op: the client is owned by the Redis connection wrapper
func (r *redisLoginLimiter) Close() error {
	return nil
}

// noOpLoginLimiter is used when Redis is unavailable
type noOpLoginLimiter struct {
	logger *slog.Logger
}

// NewNoOpLoginLimiter creates a limiter that allows every attempt
func NewNoOpLoginLimiter(logger *slog.Logger) LoginLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op login limiter - failed logins are not throttled")
	return &noOpLoginLimiter{logger: logger}
}

func (n *noOpLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (n *noOpLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	return nil
}

func (n *noOpLoginLimiter) Reset(ctx context.Context, key string) error {
	return nil
}

func (n *noOpLoginLimiter) Close() error {
	return nil
}
