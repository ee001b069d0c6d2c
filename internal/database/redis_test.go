package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/quicknote/internal/database"
	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
	"github.com/EgehanKilicarslan/quicknote/internal/testutil"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	redisClient := database.NewRedisClientForTesting(client, testutil.DiscardLogger())

	t.Cleanup(func() {
		redisClient.Close()
		mr.Close()
	})

	return mr, redisClient
}

func newSession(ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        uuid.NewString(),
		UserID:    7,
		Remember:  true,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestRedisClient_CreateAndFind(t *testing.T) {
	mr, redisClient := setupMiniRedis(t)
	ctx := context.Background()
	session := newSession(time.Hour)

	require.NoError(t, redisClient.Create(ctx, session))
	assert.True(t, mr.Exists("session:"+session.ID))

	ttl := mr.TTL("session:" + session.ID)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	found, err := redisClient.Find(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, found.ID)
	assert.Equal(t, uint(7), found.UserID)
	assert.True(t, found.Remember)
	assert.WithinDuration(t, session.ExpiresAt, found.ExpiresAt, time.Second)
}

func TestRedisClient_CreateExpired(t *testing.T) {
	_, redisClient := setupMiniRedis(t)

	err := redisClient.Create(context.Background(), newSession(-time.Minute))
	assert.ErrorIs(t, err, database.ErrSessionExpired)
}

func TestRedisClient_FindMissing(t *testing.T) {
	_, redisClient := setupMiniRedis(t)

	found, err := redisClient.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, database.ErrSessionNotFound)
	assert.Nil(t, found)
}

func TestRedisClient_KeyExpires(t *testing.T) {
	mr, redisClient := setupMiniRedis(t)
	ctx := context.Background()
	session := newSession(time.Minute)

	require.NoError(t, redisClient.Create(ctx, session))

	mr.FastForward(2 * time.Minute)

	_, err := redisClient.Find(ctx, session.ID)
	assert.ErrorIs(t, err, database.ErrSessionNotFound)
}

func TestRedisClient_FindCorrupted(t *testing.T) {
	mr, redisClient := setupMiniRedis(t)

	require.NoError(t, mr.Set("session:broken", "{not json"))

	_, err := redisClient.Find(context.Background(), "broken")
	assert.ErrorIs(t, err, database.ErrSessionNotFound)
	assert.False(t, mr.Exists("session:broken"))
}

func TestRedisClient_Delete(t *testing.T) {
	mr, redisClient := setupMiniRedis(t)
	ctx := context.Background()
	session := newSession(time.Hour)

	require.NoError(t, redisClient.Create(ctx, session))
	require.NoError(t, redisClient.Delete(ctx, session.ID))
	assert.False(t, mr.Exists("session:"+session.ID))

	assert.ErrorIs(t, redisClient.Delete(ctx, session.ID), database.ErrSessionNotFound)
}

func TestRedisClient_DeleteExpiredIsNoop(t *testing.T) {
	_, redisClient := setupMiniRedis(t)

	n, err := redisClient.DeleteExpired(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Zero(t, n)
}
