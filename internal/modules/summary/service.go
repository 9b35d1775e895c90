package summary

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ayushmaan100/Smart-content-finder/internal/models"
)

// ErrNotFound covers both missing rows and rows owned by someone else.
var ErrNotFound = errors.New("summary not found")

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Create persists a new summary in its own transaction.
func (s *Service) Create(ctx context.Context, item *models.Summary) error {
	if item.UserID == "" {
		return errors.New("summary owner is required")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("create summary: %w", err)
		}
		return nil
	})
}

// ListByOwner returns the owner's summaries, newest first.
func (s *Service) ListByOwner(ctx context.Context, userID string) ([]models.Summary, error) {
	var items []models.Summary
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

// GetOwned loads id only if userID owns it.
func (s *Service) GetOwned(ctx context.Context, userID, id string) (*models.Summary, error) {
	var item models.Summary
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
