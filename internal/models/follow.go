package models

import "time"

// Follow represents an Instagram-style follow relationship.
// FollowerID follows FollowedID; the pair is unique and self-follows are
// rejected by the toggle service before any write.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
