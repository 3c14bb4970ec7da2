package store

import (
	"context"
	"errors"

	"carmeet/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoStore struct{ db *gorm.DB }

func (s *Store) Photos() *PhotoStore { return &PhotoStore{db: s.DB} }

// GetByUserID returns (nil, nil) when the user has no photo record.
func (p *PhotoStore) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Photo, error) {
	var photo domain.Photo
	err := p.db.WithContext(ctx).First(&photo, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// Upsert keeps at most one photo row per user.
func (p *PhotoStore) Upsert(ctx context.Context, photo *domain.Photo) error {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}
	var existing domain.Photo
	err := p.db.WithContext(ctx).First(&existing, "user_id = ?", photo.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p.db.WithContext(ctx).Create(photo).Error
	}
	if err != nil {
		return err
	}
	return p.db.WithContext(ctx).Model(&existing).
		Updates(map[string]any{"path": photo.Path}).Error
}
