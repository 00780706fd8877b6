package models

import "time"

// Post is an image post with an optional caption. Deleting a post removes its
// comments, likes, saved-post entries and notifications in the same transaction.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Caption   string    `json:"caption" gorm:"type:text"`
	ImageURL  string    `json:"image_url" gorm:"size:500;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption" validate:"omitempty,max=2000"`
}
