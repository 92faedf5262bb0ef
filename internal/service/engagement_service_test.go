package service

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_Like_NotifiesAuthor(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 9, Content: "liked"}, nil
	}
	notifs := noopNotificationRepo()

	svc := NewEngagementService(noopLikeRepo(), posts, newTestNotificationService(notifs))
	require.NoError(t, svc.Like(context.Background(), 2, 5))

	require.Len(t, notifs.created, 1)
	assert.Equal(t, uint(9), notifs.created[0].UserID)
	assert.Equal(t, models.NotificationLike, notifs.created[0].Type)
	require.NotNil(t, notifs.created[0].PostID)
	assert.Equal(t, uint(5), *notifs.created[0].PostID)
}

func TestEngagementService_Like_SelfLikeSuppressed(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, Content: "own post"}, nil
	}
	notifs := noopNotificationRepo()

	svc := NewEngagementService(noopLikeRepo(), posts, newTestNotificationService(notifs))
	require.NoError(t, svc.Like(context.Background(), 2, 5))
	assert.Empty(t, notifs.created)
}

func TestEngagementService_Like_MissingPost(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	likes := noopLikeRepo()
	created := false
	likes.createFn = func(_ context.Context, _, _ uint) (bool, error) {
		created = true
		return true, nil
	}

	svc := NewEngagementService(likes, posts, newTestNotificationService(noopNotificationRepo()))
	err := svc.Like(context.Background(), 2, 404)
	assertCode(t, err, models.CodeNotFound)
	assert.False(t, created)
}

func TestEngagementService_Like_DuplicateEmitsNoNotification(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 9}, nil
	}
	likes := noopLikeRepo()
	likes.createFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }
	notifs := noopNotificationRepo()

	svc := NewEngagementService(likes, posts, newTestNotificationService(notifs))
	require.NoError(t, svc.Like(context.Background(), 2, 5))
	assert.Empty(t, notifs.created)
}

func TestEngagementService_Unlike_MissingEdgeIsNoop(t *testing.T) {
	t.Parallel()

	likes := noopLikeRepo()
	likes.deleteFn = func(_ context.Context, _, _ uint) (bool, error) { return false, nil }

	svc := NewEngagementService(likes, noopPostRepo(), newTestNotificationService(noopNotificationRepo()))
	assert.NoError(t, svc.Unlike(context.Background(), 2, 5))
}

func TestEngagementService_IsLiked(t *testing.T) {
	t.Parallel()

	likes := noopLikeRepo()
	likes.existsFn = func(_ context.Context, userID, postID uint) (bool, error) {
		return userID == 2 && postID == 5, nil
	}

	svc := NewEngagementService(likes, noopPostRepo(), newTestNotificationService(noopNotificationRepo()))

	liked, err := svc.IsLiked(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.IsLiked(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.False(t, liked)
}
