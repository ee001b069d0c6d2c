package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
	"github.com/EgehanKilicarslan/quicknote/internal/database/repository"
)

// NoteService defines the interface for note business logic
type NoteService interface {
	CreateNote(ctx context.Context, userID uint, title, content string) (*models.Note, error)
	ListNotes(ctx context.Context, userID uint) ([]models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uint) error
}

type noteService struct {
	noteRepo repository.NoteRepository
	scope    string
	logger   *slog.Logger
	now      func() time.Time
}

// NewNoteService creates a new note service instance
func NewNoteService(noteRepo repository.NoteRepository, cfg *config.Config, logger *slog.Logger) NoteService {
	return NewNoteServiceWithClock(noteRepo, cfg, logger, time.Now)
}

// NewNoteServiceWithClock creates a note service stamping dates from now
func NewNoteServiceWithClock(noteRepo repository.NoteRepository, cfg *config.Config, logger *slog.Logger, now func() time.Time) NoteService {
	scope := cfg.NotesListScope
	if scope != config.ListScopeAll {
		scope = config.ListScopeOwner
	}

	return &noteService{
		noteRepo: noteRepo,
		scope:    scope,
		logger:   logger,
		now:      now,
	}
}

func (s *noteService) CreateNote(ctx context.Context, userID uint, title, content string) (*models.Note, error) {
	note := &models.Note{
		Title:   TitleCase(title),
		Content: content,
		Date:    s.now().Local().Format(models.DateLayout),
		UserID:  userID,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		s.logger.Error("❌ [NoteService] Failed to create note", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [NoteService] Note created", "note_id", note.ID, "user_id", userID)
	return note, nil
}

// ListNotes returns the caller's notes, or every note when the service runs
// with the "all" listing scope.
func (s *noteService) ListNotes(ctx context.Context, userID uint) ([]models.Note, error) {
	var (
		notes []models.Note
		err   error
	)

	if s.scope == config.ListScopeAll {
		notes, err = s.noteRepo.ListAll(ctx)
	} else {
		notes, err = s.noteRepo.ListByUser(ctx, userID)
	}

	if err != nil {
		s.logger.Error("❌ [NoteService] Failed to list notes", "user_id", userID, "error", err)
		return nil, err
	}

	return notes, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uint) error {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			s.logger.Warn("⚠️ [NoteService] Note not found", "note_id", noteID)
			return ErrNoteNotFound
		}
		return err
	}

	if !note.OwnedBy(userID) {
		s.logger.Warn("⚠️ [NoteService] Delete denied, not the owner",
			"note_id", noteID,
			"user_id", userID,
			"owner_id", note.UserID,
		)
		return ErrForbidden
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		// Deleted concurrently between the lookup and the delete
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		s.logger.Error("❌ [NoteService] Failed to delete note", "note_id", noteID, "error", err)
		return err
	}

	s.logger.Info("🗑️ [NoteService] Note deleted", "note_id", noteID, "user_id", userID)
	return nil
}

// Service errors
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrForbidden    = errors.New("not the owner of this note")
)
