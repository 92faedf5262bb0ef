package service

import (
	"context"
	"strings"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"
)

// TimelineService composes ordered, paginated views over the post set.
// All feeds order by created_at descending with ascending post ID as
// the deterministic tie-break; trending orders by total engagement.
type TimelineService struct {
	postRepo repository.PostRepository
}

// NewTimelineService creates a new TimelineService.
func NewTimelineService(postRepo repository.PostRepository) *TimelineService {
	return &TimelineService{postRepo: postRepo}
}

// UserTimeline returns the posts authored by userID, newest first.
func (s *TimelineService) UserTimeline(ctx context.Context, userID uint, page models.Page) (*models.PostPage, error) {
	page = page.Normalized()
	posts, err := s.postRepo.ByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return models.NewPostPage(posts, page), nil
}

// HomeTimeline returns posts authored by userID and by everyone userID
// follows, newest first. A user with no follows still sees their own
// posts.
func (s *TimelineService) HomeTimeline(ctx context.Context, userID uint, page models.Page) (*models.PostPage, error) {
	page = page.Normalized()
	posts, err := s.postRepo.HomeTimeline(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return models.NewPostPage(posts, page), nil
}

// HashtagFeed returns posts carrying the tag, newest first. An unknown
// tag yields an empty page, not an error.
func (s *TimelineService) HashtagFeed(ctx context.Context, tagName string, page models.Page) (*models.PostPage, error) {
	page = page.Normalized()
	posts, err := s.postRepo.ByHashtag(ctx, strings.ToLower(tagName), page)
	if err != nil {
		return nil, err
	}
	return models.NewPostPage(posts, page), nil
}

// Trending returns all posts ordered by total engagement
// (likes + reposts + replies) descending, recency breaking ties. The
// default first page is served cache-aside with a short TTL.
func (s *TimelineService) Trending(ctx context.Context, page models.Page) (*models.PostPage, error) {
	page = page.Normalized()

	var posts []*models.Post
	if page.Offset == 0 && page.Limit == models.DefaultPageSize {
		err := cache.Aside(ctx, cache.TrendingKey(), &posts, cache.TrendingTTL, func() error {
			fetched, fetchErr := s.postRepo.Trending(ctx, page)
			if fetchErr != nil {
				return fetchErr
			}
			posts = fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return models.NewPostPage(posts, page), nil
	}

	posts, err := s.postRepo.Trending(ctx, page)
	if err != nil {
		return nil, err
	}
	return models.NewPostPage(posts, page), nil
}

// Search returns posts whose content contains query, case-insensitive;
// an empty query matches all posts.
func (s *TimelineService) Search(ctx context.Context, query string, page models.Page) (*models.PostPage, error) {
	page = page.Normalized()
	posts, err := s.postRepo.Search(ctx, strings.TrimSpace(query), page)
	if err != nil {
		return nil, err
	}
	return models.NewPostPage(posts, page), nil
}

// Replies returns the direct replies to parentID, newest first.
func (s *TimelineService) Replies(ctx context.Context, parentID uint, page models.Page) (*models.PostPage, error) {
	page = page.Normalized()
	posts, err := s.postRepo.RepliesTo(ctx, parentID, page)
	if err != nil {
		return nil, err
	}
	return models.NewPostPage(posts, page), nil
}
