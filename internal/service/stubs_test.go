package service

import (
	"context"
	"errors"
	"testing"

	"chirp/internal/identity"
	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post, []string) error
	createReplyFn   func(context.Context, *models.Post, []string) error
	createRepostFn  func(context.Context, *models.Post, []string) error
	updateContentFn func(context.Context, uint, string, []string) error
	deleteFn        func(context.Context, uint) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	byUserFn        func(context.Context, uint, models.Page) ([]*models.Post, error)
	homeTimelineFn  func(context.Context, uint, models.Page) ([]*models.Post, error)
	byHashtagFn     func(context.Context, string, models.Page) ([]*models.Post, error)
	trendingFn      func(context.Context, models.Page) ([]*models.Post, error)
	searchFn        func(context.Context, string, models.Page) ([]*models.Post, error)
	repliesToFn     func(context.Context, uint, models.Page) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	return s.createFn(ctx, post, tagNames)
}
func (s *postRepoStub) CreateReply(ctx context.Context, reply *models.Post, tagNames []string) error {
	return s.createReplyFn(ctx, reply, tagNames)
}
func (s *postRepoStub) CreateRepost(ctx context.Context, repost *models.Post, tagNames []string) error {
	return s.createRepostFn(ctx, repost, tagNames)
}
func (s *postRepoStub) UpdateContent(ctx context.Context, postID uint, content string, tagNames []string) error {
	return s.updateContentFn(ctx, postID, content, tagNames)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ByUser(ctx context.Context, userID uint, page models.Page) ([]*models.Post, error) {
	return s.byUserFn(ctx, userID, page)
}
func (s *postRepoStub) HomeTimeline(ctx context.Context, userID uint, page models.Page) ([]*models.Post, error) {
	return s.homeTimelineFn(ctx, userID, page)
}
func (s *postRepoStub) ByHashtag(ctx context.Context, name string, page models.Page) ([]*models.Post, error) {
	return s.byHashtagFn(ctx, name, page)
}
func (s *postRepoStub) Trending(ctx context.Context, page models.Page) ([]*models.Post, error) {
	return s.trendingFn(ctx, page)
}
func (s *postRepoStub) Search(ctx context.Context, query string, page models.Page) ([]*models.Post, error) {
	return s.searchFn(ctx, query, page)
}
func (s *postRepoStub) RepliesTo(ctx context.Context, parentID uint, page models.Page) ([]*models.Post, error) {
	return s.repliesToFn(ctx, parentID, page)
}

func noopPostRepo() *postRepoStub {
	nextID := uint(100)
	persist := func(_ context.Context, post *models.Post, _ []string) error {
		nextID++
		post.ID = nextID
		return nil
	}
	return &postRepoStub{
		createFn:       persist,
		createReplyFn:  persist,
		createRepostFn: persist,
		updateContentFn: func(_ context.Context, _ uint, _ string, _ []string) error {
			return nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Content: "stub"}, nil
		},
		byUserFn: func(_ context.Context, _ uint, _ models.Page) ([]*models.Post, error) {
			return nil, nil
		},
		homeTimelineFn: func(_ context.Context, _ uint, _ models.Page) ([]*models.Post, error) {
			return nil, nil
		},
		byHashtagFn: func(_ context.Context, _ string, _ models.Page) ([]*models.Post, error) {
			return nil, nil
		},
		trendingFn: func(_ context.Context, _ models.Page) ([]*models.Post, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ string, _ models.Page) ([]*models.Post, error) {
			return nil, nil
		},
		repliesToFn: func(_ context.Context, _ uint, _ models.Page) ([]*models.Post, error) {
			return nil, nil
		},
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	createFn func(context.Context, uint, uint) (bool, error)
	deleteFn func(context.Context, uint, uint) (bool, error)
	existsFn func(context.Context, uint, uint) (bool, error)
}

func (s *likeRepoStub) Create(ctx context.Context, userID, postID uint) (bool, error) {
	return s.createFn(ctx, userID, postID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, postID uint) (bool, error) {
	return s.deleteFn(ctx, userID, postID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return s.existsFn(ctx, userID, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	createFn         func(context.Context, uint, uint) (bool, error)
	deleteFn         func(context.Context, uint, uint) (bool, error)
	existsFn         func(context.Context, uint, uint) (bool, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	followingIDsFn   func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.createFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.deleteFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followingID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		deleteFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:         func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		followingIDsFn:   func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listByUserFn  func(context.Context, uint, models.Page, bool) ([]*models.Notification, error)
	countUnreadFn func(context.Context, uint) (int64, error)
	markAllReadFn func(context.Context, uint) (int64, error)

	created []*models.Notification
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	if s.createFn != nil {
		return s.createFn(ctx, n)
	}
	s.created = append(s.created, n)
	return nil
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, page models.Page, unreadOnly bool) ([]*models.Notification, error) {
	return s.listByUserFn(ctx, userID, page, unreadOnly)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.markAllReadFn(ctx, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		listByUserFn: func(_ context.Context, _ uint, _ models.Page, _ bool) ([]*models.Notification, error) {
			return nil, nil
		},
		countUnreadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markAllReadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// identityStub is a stub for identity.Provider.
type identityStub struct {
	existsFn     func(context.Context, uint) (bool, error)
	getFn        func(context.Context, uint) (*identity.Profile, error)
	byUsernameFn func(context.Context, string) (*identity.Profile, error)
}

func (s *identityStub) Exists(ctx context.Context, userID uint) (bool, error) {
	return s.existsFn(ctx, userID)
}
func (s *identityStub) Get(ctx context.Context, userID uint) (*identity.Profile, error) {
	return s.getFn(ctx, userID)
}
func (s *identityStub) ByUsername(ctx context.Context, username string) (*identity.Profile, error) {
	return s.byUsernameFn(ctx, username)
}

func noopIdentity() *identityStub {
	return &identityStub{
		existsFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
		getFn: func(_ context.Context, userID uint) (*identity.Profile, error) {
			return &identity.Profile{ID: userID}, nil
		},
		byUsernameFn: func(_ context.Context, username string) (*identity.Profile, error) {
			return nil, models.NewNotFoundError("User", username)
		},
	}
}

func newTestNotificationService(repo *notificationRepoStub) *NotificationService {
	return NewNotificationService(repo, nil)
}

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
