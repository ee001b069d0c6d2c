package database

import (
	"context"
	"errors"
	"time"

	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
)

// SessionStore persists login sessions. Implemented by the relational session
// repository and by RedisClient.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Session store errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)
