// Package identity exposes the user identity collaborator consumed by
// the engine. The engine never writes users; it resolves IDs and
// usernames through a Provider.
package identity

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// Profile is the denormalized user view embedded in engine responses.
type Profile struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image"`
}

// Provider answers identity queries for user references held by posts,
// follows, likes and notifications.
type Provider interface {
	Exists(ctx context.Context, userID uint) (bool, error)
	Get(ctx context.Context, userID uint) (*Profile, error)
	ByUsername(ctx context.Context, username string) (*Profile, error)
}

type gormProvider struct {
	db *gorm.DB
}

// NewProvider returns a Provider backed by the users table.
func NewProvider(db *gorm.DB) Provider {
	return &gormProvider{db: db}
}

func (p *gormProvider) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreUnavailableError(err)
	}
	return count > 0, nil
}

func (p *gormProvider) Get(ctx context.Context, userID uint) (*Profile, error) {
	var user models.User
	if err := p.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewStoreUnavailableError(err)
	}
	return profileOf(&user), nil
}

func (p *gormProvider) ByUsername(ctx context.Context, username string) (*Profile, error) {
	var user models.User
	if err := p.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", username)
		}
		return nil, models.NewStoreUnavailableError(err)
	}
	return profileOf(&user), nil
}

func profileOf(u *models.User) *Profile {
	return &Profile{
		ID:           u.ID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
	}
}
