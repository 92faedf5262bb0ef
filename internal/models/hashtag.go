package models

import "time"

// Hashtag is a normalized tag identity extracted from post content.
// Names are lowercase word characters and unique. A hashtag is created
// lazily on first use and never deleted, even at PostCount zero, so the
// same name always resolves to the same identity.
type Hashtag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	PostCount int       `gorm:"not null;default:0" json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
}
