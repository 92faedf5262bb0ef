package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"chirp/internal/cache"
	"chirp/internal/identity"
	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// PostService owns the post graph: creation, content edits, deletion,
// and the reply/repost linkage with its materialized counters.
type PostService struct {
	postRepo      repository.PostRepository
	hashtags      *HashtagService
	users         identity.Provider
	notifications *NotificationService
}

// CreatePostInput carries the author-supplied fields of a new post,
// reply or repost.
type CreatePostInput struct {
	AuthorID uint
	Content  string
	Media    []string
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	hashtags *HashtagService,
	users identity.Provider,
	notifications *NotificationService,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		hashtags:      hashtags,
		users:         users,
		notifications: notifications,
	}
}

// validateContent trims and length-checks content. Reposts may carry an
// empty body; everything else requires 1 to 280 code points.
func validateContent(content string, allowEmpty bool) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		if allowEmpty {
			return "", nil
		}
		return "", models.NewInvalidOperationError("Content is required")
	}
	if utf8.RuneCountInString(trimmed) > models.MaxContentPoints {
		return "", models.NewInvalidOperationError("Content too long (max 280 characters)")
	}
	return trimmed, nil
}

// Create persists an original post: hashtags are extracted, resolved
// (created on first use) and associated in the same transaction that
// saves the post. Mentioned users are notified.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content, err := validateContent(in.Content, false)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  in.AuthorID,
		Content: content,
		Media:   in.Media,
	}
	if err := s.postRepo.Create(ctx, post, s.hashtags.ExtractHashtags(content)); err != nil {
		return nil, err
	}
	observability.PostsCreated.WithLabelValues("post").Inc()
	cache.InvalidateTrending(ctx)

	s.notifyMentions(ctx, post.ID, in.AuthorID, content)

	return s.postRepo.GetByID(ctx, post.ID)
}

// Edit replaces a post's content; nothing else is mutable. The hashtag
// association set is diffed against the new content: removed tags lose
// a post, added tags gain one, unchanged tags are untouched.
func (s *PostService) Edit(ctx context.Context, postID uint, newContent string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	content, err := validateContent(newContent, post.IsRepost)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateContent(ctx, postID, content, s.hashtags.ExtractHashtags(content)); err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTrending(ctx)

	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post along with its like edges and hashtag
// associations; child replies and reposts are detached, not destroyed.
func (s *PostService) Delete(ctx context.Context, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateTrending(ctx)
	if post.ParentID != nil {
		cache.InvalidatePost(ctx, *post.ParentID)
	}
	if post.OriginalPostID != nil {
		cache.InvalidatePost(ctx, *post.OriginalPostID)
	}
	return nil
}

// Reply creates a reply to parentID and atomically increments the
// parent's reply_count. The parent's author is notified unless they
// replied to themselves.
func (s *PostService) Reply(ctx context.Context, parentID uint, in CreatePostInput) (*models.Post, error) {
	parent, err := s.postRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	content, err := validateContent(in.Content, false)
	if err != nil {
		return nil, err
	}

	reply := &models.Post{
		UserID:   in.AuthorID,
		Content:  content,
		Media:    in.Media,
		IsReply:  true,
		ParentID: &parentID,
	}
	if err := s.postRepo.CreateReply(ctx, reply, s.hashtags.ExtractHashtags(content)); err != nil {
		return nil, err
	}
	observability.PostsCreated.WithLabelValues("reply").Inc()
	cache.InvalidatePost(ctx, parentID)
	cache.InvalidateTrending(ctx)

	if err := s.notifications.Emit(ctx, parent.UserID, models.NotificationReply, in.AuthorID, &reply.ID); err != nil {
		observability.Logger.WarnContext(ctx, "reply notification failed",
			slog.Any("parent", parentID),
			slog.String("error", err.Error()),
		)
	}
	s.notifyMentions(ctx, reply.ID, in.AuthorID, content)

	return s.postRepo.GetByID(ctx, reply.ID)
}

// Repost creates a repost of originalID and atomically increments the
// original's repost_count. An empty content is a plain repost; a
// non-empty one quotes the original.
func (s *PostService) Repost(ctx context.Context, originalID uint, in CreatePostInput) (*models.Post, error) {
	original, err := s.postRepo.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}

	content, err := validateContent(in.Content, true)
	if err != nil {
		return nil, err
	}

	repost := &models.Post{
		UserID:         in.AuthorID,
		Content:        content,
		Media:          in.Media,
		IsRepost:       true,
		OriginalPostID: &originalID,
	}
	if err := s.postRepo.CreateRepost(ctx, repost, s.hashtags.ExtractHashtags(content)); err != nil {
		return nil, err
	}
	observability.PostsCreated.WithLabelValues("repost").Inc()
	cache.InvalidatePost(ctx, originalID)
	cache.InvalidateTrending(ctx)

	if err := s.notifications.Emit(ctx, original.UserID, models.NotificationRepost, in.AuthorID, &repost.ID); err != nil {
		observability.Logger.WarnContext(ctx, "repost notification failed",
			slog.Any("original", originalID),
			slog.String("error", err.Error()),
		)
	}
	s.notifyMentions(ctx, repost.ID, in.AuthorID, content)

	return s.postRepo.GetByID(ctx, repost.ID)
}

// Get returns a post with hashtags preloaded, cache-aside.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(postID), &post, cache.PostTTL, func() error {
		fetched, fetchErr := s.postRepo.GetByID(ctx, postID)
		if fetchErr != nil {
			return fetchErr
		}
		post = *fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// notifyMentions emits a mention notification per distinct resolvable
// @username in content. Unknown usernames are skipped; failures only
// log, the post itself is already committed.
func (s *PostService) notifyMentions(ctx context.Context, postID, actorID uint, content string) {
	seen := map[string]struct{}{}
	for _, username := range s.hashtags.ExtractMentions(content) {
		if _, dup := seen[username]; dup {
			continue
		}
		seen[username] = struct{}{}

		profile, err := s.users.ByUsername(ctx, username)
		if err != nil {
			if models.IsNotFound(err) {
				continue
			}
			observability.Logger.WarnContext(ctx, "mention lookup failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err := s.notifications.Emit(ctx, profile.ID, models.NotificationMention, actorID, &postID); err != nil {
			observability.Logger.WarnContext(ctx, "mention notification failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
	}
}
