package models

import "time"

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral image. Expired stories are filtered on read, never
// physically purged.
type Story struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ImageURL  string    `json:"image_url" gorm:"size:500;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

// IsExpired reports whether the story is past its expiry.
func (s *Story) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}
