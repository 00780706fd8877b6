package models

import "time"

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// Notification records that an actor liked/commented/followed. A like or
// follow notification exists exactly as long as its triggering row does; the
// toggle service keeps the two in lock-step.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:20;index;not null"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	ActorID     uint      `json:"actor_id" gorm:"index;not null"`
	PostID      *uint     `json:"post_id,omitempty" gorm:"index"`
	CommentID   *uint     `json:"comment_id,omitempty" gorm:"index"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
