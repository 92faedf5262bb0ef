package models

import "time"

// Follow is the directed follower -> following edge of the social
// graph. (FollowerID, FollowingID) is unique; self-follows are rejected
// at the service layer before any write.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_edge;index" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_edge;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
