package service

import (
	"context"
	"log/slog"

	"chirp/internal/identity"
	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// SocialService maintains the directed follow graph between users.
type SocialService struct {
	followRepo    repository.FollowRepository
	users         identity.Provider
	notifications *NotificationService
}

// NewSocialService creates a new SocialService.
func NewSocialService(
	followRepo repository.FollowRepository,
	users identity.Provider,
	notifications *NotificationService,
) *SocialService {
	return &SocialService{
		followRepo:    followRepo,
		users:         users,
		notifications: notifications,
	}
}

// Follow creates the follower -> following edge. Idempotent: a repeated
// follow leaves a single edge and emits no second notification.
func (s *SocialService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return models.NewInvalidOperationError("Users cannot follow themselves")
	}

	exists, err := s.users.Exists(ctx, followingID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", followingID)
	}

	created, err := s.followRepo.Create(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	observability.FollowsCreated.Inc()

	if err := s.notifications.Emit(ctx, followingID, models.NotificationFollow, followerID, nil); err != nil {
		observability.Logger.WarnContext(ctx, "follow notification failed",
			slog.Any("following", followingID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Unfollow removes the edge if present; removing a missing edge is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	_, err := s.followRepo.Delete(ctx, followerID, followingID)
	return err
}

// IsFollowing reports whether followerID follows followingID.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

// FollowerCount returns how many users follow userID.
func (s *SocialService) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.followRepo.CountFollowers(ctx, userID)
}

// FollowingCount returns how many users userID follows.
func (s *SocialService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followRepo.CountFollowing(ctx, userID)
}

// Following returns the IDs of the users userID follows.
func (s *SocialService) Following(ctx context.Context, userID uint) ([]uint, error) {
	return s.followRepo.FollowingIDs(ctx, userID)
}
