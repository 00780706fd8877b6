package models

import "time"

// Message represents a direct message between two users
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	SenderID    uint      `json:"sender_id" gorm:"index;not null"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a direct message
type SendMessageRequest struct {
	RecipientUsername string `json:"recipient_username" validate:"required"`
	Text              string `json:"text" validate:"required,min=1,max=1000"`
}
