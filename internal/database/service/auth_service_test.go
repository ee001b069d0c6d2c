package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/quicknote/internal/database"
	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
	"github.com/EgehanKilicarslan/quicknote/internal/database/repository"
	"github.com/EgehanKilicarslan/quicknote/internal/database/service"
	"github.com/EgehanKilicarslan/quicknote/internal/testutil"
)

func newAuthService(t *testing.T) (service.AuthService, database.SessionStore) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sessions := repository.NewSessionRepository(db)
	svc := service.NewAuthService(repository.NewUserRepository(db), sessions, testutil.TestConfig(), testutil.DiscardLogger())
	return svc, sessions
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "alice smith", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice Smith", user.Name)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "pbkdf2:sha256:1000$"))
	assert.NotContains(t, user.PasswordHash, "password123")

	_, err = svc.Register(ctx, "alice@example.com", "Another", "password456")
	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrongpass1")
	assert.ErrorIs(t, err, service.ErrIncorrectPassword)

	_, err = svc.Authenticate(ctx, "bob@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrEmailNotFound)
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	issued, err := svc.StartSession(ctx, user.ID, true)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, 86400, issued.MaxAge)
	assert.True(t, issued.Session.Remember)

	resolved, session, err := svc.ResolveSession(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, issued.Session.ID, session.ID)

	require.NoError(t, svc.EndSession(ctx, issued.Token))

	_, _, err = svc.ResolveSession(ctx, issued.Token)
	assert.ErrorIs(t, err, service.ErrInvalidSession)

	assert.ErrorIs(t, svc.EndSession(ctx, issued.Token), service.ErrInvalidSession)
}

func TestAuthService_TransientSession(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	issued, err := svc.StartSession(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Zero(t, issued.MaxAge)
	assert.False(t, issued.Session.Remember)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.Session.ExpiresAt, 5*time.Second)
}

func TestAuthService_ResolveSession_Invalid(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, _, err := svc.ResolveSession(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidSession, "token %q", token)
	}
}

func TestAuthService_SweepExpiredSessions(t *testing.T) {
	svc, sessions := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	live, err := svc.StartSession(ctx, user.ID, false)
	require.NoError(t, err)

	require.NoError(t, sessions.Create(ctx, &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	n, err := svc.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, _, err = svc.ResolveSession(ctx, live.Token)
	assert.NoError(t, err)
}

func TestAuthService_ResolveSession_StorageError(t *testing.T) {
	users := new(testutil.MockUserRepository)
	sessions := new(testutil.MockSessionStore)
	svc := service.NewAuthService(users, sessions, testutil.TestConfig(), testutil.DiscardLogger())
	ctx := context.Background()

	sessions.On("Create", ctx, mock.AnythingOfType("*models.Session")).Return(nil)
	issued, err := svc.StartSession(ctx, 1, false)
	require.NoError(t, err)

	storageErr := errors.New("connection refused")
	sessions.On("Find", ctx, issued.Session.ID).Return(nil, storageErr)

	_, _, err = svc.ResolveSession(ctx, issued.Token)
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, service.ErrInvalidSession)
}

func TestAuthService_ResolveSession_OwnerMismatch(t *testing.T) {
	users := new(testutil.MockUserRepository)
	sessions := new(testutil.MockSessionStore)
	svc := service.NewAuthService(users, sessions, testutil.TestConfig(), testutil.DiscardLogger())
	ctx := context.Background()

	sessions.On("Create", ctx, mock.Anything).Return(nil)
	issued, err := svc.StartSession(ctx, 1, false)
	require.NoError(t, err)

	sessions.On("Find", ctx, issued.Session.ID).Return(&models.Session{
		ID:        issued.Session.ID,
		UserID:    2,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	_, _, err = svc.ResolveSession(ctx, issued.Token)
	assert.ErrorIs(t, err, service.ErrInvalidSession)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
