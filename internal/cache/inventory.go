package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix     = "post:%d"
	TrendingKeyPrefix = "feed:trending"
)

const (
	PostTTL     = 10 * time.Minute
	TrendingTTL = 1 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// TrendingKey caches only the default first page; other windows always
// hit the store.
func TrendingKey() string {
	return TrendingKeyPrefix
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateTrending(ctx context.Context) {
	Invalidate(ctx, TrendingKey())
}
