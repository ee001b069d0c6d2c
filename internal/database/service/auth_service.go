package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EgehanKilicarslan/quicknote/internal/auth"
	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/database"
	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
	"github.com/EgehanKilicarslan/quicknote/internal/database/repository"
)

// AuthService defines the interface for registration, login and sessions
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	StartSession(ctx context.Context, userID uint, remember bool) (*IssuedSession, error)
	EndSession(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*models.User, *models.Session, error)
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// IssuedSession is a freshly persisted session and its signed cookie value
type IssuedSession struct {
	Token   string
	Session *models.Session
	MaxAge  int // Cookie Max-Age in seconds; 0 for a browser-session cookie
}

type authService struct {
	userRepo repository.UserRepository
	sessions database.SessionStore
	hasher   *auth.PasswordHasher
	signer   *auth.TokenSigner
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	sessions database.SessionStore,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   auth.NewPasswordHasher(int(cfg.PasswordHashIterations)),
		signer:   auth.NewTokenSigner(cfg.SecretKey),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email)

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         TitleCase(name),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, ErrEmailNotFound
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, ErrIncorrectPassword
	}

	s.logger.Info("✅ [AuthService] User authenticated", "user_id", user.ID)
	return user, nil
}

func (s *authService) StartSession(ctx context.Context, userID uint, remember bool) (*IssuedSession, error) {
	lifetime := time.Duration(s.cfg.SessionExpiration) * time.Second
	maxAge := 0
	if remember {
		lifetime = time.Duration(s.cfg.SessionRememberExpiration) * time.Second
		maxAge = int(s.cfg.SessionRememberExpiration)
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Remember:  remember,
		ExpiresAt: now.Add(lifetime),
		CreatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("❌ [AuthService] Failed to persist session", "user_id", userID, "error", err)
		return nil, err
	}

	token, err := s.signer.Sign(session.ID, userID, session.ExpiresAt)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to sign session", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Session started", "user_id", userID, "remember", remember)
	return &IssuedSession{Token: token, Session: session, MaxAge: maxAge}, nil
}

func (s *authService) EndSession(ctx context.Context, token string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	sessionID, _, err := s.signer.Parse(token)
	if err != nil {
		return ErrInvalidSession
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			s.logger.Warn("⚠️ [AuthService] Session not found for logout")
			return ErrInvalidSession
		}
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

// ResolveSession maps a cookie value to its user. Every failure mode collapses
// into ErrInvalidSession except storage errors.
func (s *authService) ResolveSession(ctx context.Context, token string) (*models.User, *models.Session, error) {
	sessionID, userID, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil, ErrInvalidSession
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) || errors.Is(err, database.ErrSessionExpired) {
			return nil, nil, ErrInvalidSession
		}
		return nil, nil, err
	}

	if session.UserID != userID || session.Expired(s.now()) {
		return nil, nil, ErrInvalidSession
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidSession
		}
		return nil, nil, err
	}

	return user, session, nil
}

func (s *authService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to sweep sessions", "error", err)
		return 0, err
	}
	if n > 0 {
		s.logger.Info("🧹 [AuthService] Removed expired sessions", "count", n)
	}
	return n, nil
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrEmailNotFound      = errors.New("email not registered")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)
