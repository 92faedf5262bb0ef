package service

import (
	"context"
	"log/slog"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// EngagementService maintains like edges and the derived like counter
// on posts.
type EngagementService struct {
	likeRepo      repository.LikeRepository
	postRepo      repository.PostRepository
	notifications *NotificationService
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	notifications *NotificationService,
) *EngagementService {
	return &EngagementService{
		likeRepo:      likeRepo,
		postRepo:      postRepo,
		notifications: notifications,
	}
}

// Like records userID's like of postID. Liking twice is a no-op; the
// counter moves by exactly one per distinct (user, post) edge. The
// post's author is notified unless they liked their own post.
func (s *EngagementService) Like(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	created, err := s.likeRepo.Create(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	observability.LikesApplied.WithLabelValues("like").Inc()
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTrending(ctx)

	if err := s.notifications.Emit(ctx, post.UserID, models.NotificationLike, userID, &postID); err != nil {
		observability.Logger.WarnContext(ctx, "like notification failed",
			slog.Any("post", postID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Unlike removes userID's like of postID if present; unliking a
// non-liked post is a no-op.
func (s *EngagementService) Unlike(ctx context.Context, userID, postID uint) error {
	removed, err := s.likeRepo.Delete(ctx, userID, postID)
	if err != nil {
		return err
	}
	if removed {
		observability.LikesApplied.WithLabelValues("unlike").Inc()
		cache.InvalidatePost(ctx, postID)
		cache.InvalidateTrending(ctx)
	}
	return nil
}

// IsLiked reports whether userID has liked postID.
func (s *EngagementService) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, postID)
}
