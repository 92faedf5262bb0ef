package models

import "time"

// Like is the (user, post) endorsement edge. The composite unique index
// backs the idempotent insert-if-absent that keeps like_count exact
// under concurrent duplicate likes.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
