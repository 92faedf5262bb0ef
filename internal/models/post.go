package models

import (
	"time"
)

// Post represents a single authored content unit: an original post, a
// reply to a parent post, or a repost of an original post.
//
// LikeCount, ReplyCount and RepostCount are materialized counters. They
// are adjusted by exactly one unit inside the repository transaction
// that creates or removes the corresponding edge, never recomputed by
// scanning edges at read time.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	UserID   uint     `gorm:"not null;index" json:"user_id"`
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	Media    []string `gorm:"serializer:json" json:"media"`
	IsReply  bool     `gorm:"default:false" json:"is_reply"`
	ParentID *uint    `gorm:"index" json:"parent_id,omitempty"`
	IsRepost bool     `gorm:"default:false" json:"is_repost"`
	// OriginalPostID references the reposted post when IsRepost is set.
	OriginalPostID *uint     `gorm:"index" json:"original_post_id,omitempty"`
	Hashtags       []Hashtag `gorm:"many2many:post_hashtags;" json:"hashtags"`
	LikeCount      int       `gorm:"not null;default:0" json:"like_count"`
	ReplyCount     int       `gorm:"not null;default:0" json:"reply_count"`
	RepostCount    int       `gorm:"not null;default:0" json:"repost_count"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MaxContentPoints is the maximum post length in Unicode code points.
const MaxContentPoints = 280
