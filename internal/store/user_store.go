package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"carmeet/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	return u.db.WithContext(ctx).Create(usr).Error
}

// GetByEmail returns (nil, nil) when no user matches.
func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := u.db.WithContext(ctx).Preload("Role").First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user domain.User
	err := u.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update merges the supplied columns; nil values write NULL.
func (u *UserStore) Update(ctx context.Context, id domain.UserID, fields map[string]any) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// FindOrCreateRole resolves a role by slug, creating it on first use so a
// fresh database bootstraps its default roles lazily.
func (u *UserStore) FindOrCreateRole(ctx context.Context, slug string) (*domain.Role, error) {
	var role domain.Role
	err := u.db.WithContext(ctx).First(&role, "slug = ?", slug).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	role = domain.Role{
		ID:          uuid.New(),
		Name:        titleCase(slug),
		Slug:        slug,
		Description: "Auto-created " + slug + " role",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.db.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
