package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/quicknote/internal/database"
	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
	"github.com/EgehanKilicarslan/quicknote/internal/database/repository"
	"github.com/EgehanKilicarslan/quicknote/internal/testutil"
)

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "pbkdf2:sha256:1000$salt$hash", Name: "Test"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}

// ==================== USER REPOSITORY ====================

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "alice@example.com")
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "pbkdf2:sha256:1000$salt$hash", byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	createUser(t, db, "alice@example.com")

	err := repo.Create(context.Background(), &models.User{
		Email:        "alice@example.com",
		PasswordHash: "x",
		Name:         "Other",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

// ==================== NOTE REPOSITORY ====================

func TestNoteRepository_ListByUserAndAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	for _, note := range []*models.Note{
		{Title: "First", UserID: alice.ID},
		{Title: "Bob's", UserID: bob.ID},
		{Title: "Second", UserID: alice.ID},
	} {
		require.NoError(t, repo.Create(ctx, note))
	}

	aliceNotes, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceNotes, 2)
	assert.Equal(t, "First", aliceNotes[0].Title)
	assert.Equal(t, "Second", aliceNotes[1].Title)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestNoteRepository_FindAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice@example.com")
	note := &models.Note{Title: "Groceries", Content: "milk, eggs", Date: "01-March-2024 10:00", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, note))

	found, err := repo.FindByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs", found.Content)
	assert.Equal(t, "01-March-2024 10:00", found.Date)

	require.NoError(t, repo.Delete(ctx, note.ID))

	_, err = repo.FindByID(ctx, note.ID)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, note.ID), repository.ErrNoteNotFound)
}

func TestNoteRepository_RequiresExistingOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNoteRepository(db)

	err := repo.Create(context.Background(), &models.Note{Title: "Orphan", UserID: 42})
	assert.Error(t, err)
}

// ==================== SESSION REPOSITORY ====================

func TestSessionRepository_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := repository.NewSessionRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice@example.com")
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    alice.ID,
		Remember:  true,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, session))

	found, err := store.Find(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.UserID)
	assert.True(t, found.Remember)

	require.NoError(t, store.Delete(ctx, session.ID))

	_, err = store.Find(ctx, session.ID)
	assert.ErrorIs(t, err, database.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, session.ID), database.ErrSessionNotFound)
}

func TestSessionRepository_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := repository.NewSessionRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice@example.com")
	now := time.Now()

	expired := &models.Session{ID: uuid.NewString(), UserID: alice.ID, ExpiresAt: now.Add(-time.Minute)}
	live := &models.Session{ID: uuid.NewString(), UserID: alice.ID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Create(ctx, expired))
	require.NoError(t, store.Create(ctx, live))

	_, err := store.Find(ctx, expired.ID)
	assert.ErrorIs(t, err, database.ErrSessionExpired)

	n, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Find(ctx, expired.ID)
	assert.ErrorIs(t, err, database.ErrSessionNotFound)

	_, err = store.Find(ctx, live.ID)
	assert.NoError(t, err)
}
