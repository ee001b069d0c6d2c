package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
)

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id uint) (*models.Note, error)
	ListAll(ctx context.Context) ([]models.Note, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Note, error)
	Delete(ctx context.Context, id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository instance
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).First(&note, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ListAll returns every note in storage order
func (r *noteRepository) ListAll(ctx context.Context) ([]models.Note, error) {
	notes := []models.Note{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&notes).Error
	return notes, err
}

func (r *noteRepository) ListByUser(ctx context.Context, userID uint) ([]models.Note, error) {
	notes := []models.Note{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&notes).Error
	return notes, err
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Note{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// Repository errors
var (
	ErrNoteNotFound = errors.New("note not found")
)
