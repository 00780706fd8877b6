package services

import (
	"errors"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// ToggleService flips the binary relations (like, follow, save) and keeps the
// paired notification in lock-step. Each toggle is one transaction: the
// relation row, its notification and the fresh counts commit together.
type ToggleService struct {
	db *gorm.DB
}

// NewToggleService creates a new ToggleService
func NewToggleService(db *gorm.DB) *ToggleService {
	return &ToggleService{db: db}
}

// LikeResult is the outcome of a like toggle
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// FollowResult is the outcome of a follow toggle. Counts are the target's.
type FollowResult struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// SaveResult is the outcome of a save toggle
type SaveResult struct {
	Saved bool `json:"saved"`
}

// ToggleLike likes the post if the actor has not liked it, otherwise unlikes
// it. The like row and its notification are written or removed together; the
// returned count is re-read inside the same transaction.
func (s *ToggleService) ToggleLike(actorID, postID uint) (*LikeResult, error) {
	res := &LikeResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		var like models.Like
		err := tx.Where("user_id = ? AND post_id = ?", actorID, postID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Where("type = ? AND actor_id = ? AND post_id = ?",
				models.NotificationTypeLike, actorID, postID).
				Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			res.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: actorID, PostID: postID}).Error; err != nil {
				return err
			}
			// Self-likes are allowed but never notify.
			if post.UserID != actorID {
				notif := &models.Notification{
					Type:        models.NotificationTypeLike,
					RecipientID: post.UserID,
					ActorID:     actorID,
					PostID:      &post.ID,
				}
				if err := tx.Create(notif).Error; err != nil {
					return err
				}
			}
			res.Liked = true
		default:
			return err
		}

		return tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&res.LikeCount).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost an insert race against a concurrent like by the same user.
		// The winner already created the row; report the committed state.
		return s.likeState(actorID, postID)
	}
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return res, nil
}

func (s *ToggleService) likeState(actorID, postID uint) (*LikeResult, error) {
	res := &LikeResult{}
	var mine int64
	if err := s.db.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", actorID, postID).Count(&mine).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	res.Liked = mine > 0
	if err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&res.LikeCount).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return res, nil
}

// ToggleFollow follows the target if not already followed, otherwise
// unfollows. Following yourself is rejected before any write. The returned
// counts are the target's follower and following counts after the commit.
func (s *ToggleService) ToggleFollow(actorID, targetID uint) (*FollowResult, error) {
	if actorID == targetID {
		return nil, apperrors.ErrInvalidOperation
	}

	res := &FollowResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, targetID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		var follow models.Follow
		err := tx.Where("follower_id = ? AND followed_id = ?", actorID, targetID).First(&follow).Error
		switch {
		case err == nil:
			if err := tx.Delete(&follow).Error; err != nil {
				return err
			}
			if err := tx.Where("type = ? AND actor_id = ? AND recipient_id = ?",
				models.NotificationTypeFollow, actorID, targetID).
				Delete(&models.Notification{}).Error; err != nil {
				return err
			}
			res.Following = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Follow{FollowerID: actorID, FollowedID: targetID}).Error; err != nil {
				return err
			}
			notif := &models.Notification{
				Type:        models.NotificationTypeFollow,
				RecipientID: targetID,
				ActorID:     actorID,
			}
			if err := tx.Create(notif).Error; err != nil {
				return err
			}
			res.Following = true
		default:
			return err
		}

		if err := tx.Model(&models.Follow{}).Where("followed_id = ?", targetID).Count(&res.FollowersCount).Error; err != nil {
			return err
		}
		return tx.Model(&models.Follow{}).Where("follower_id = ?", targetID).Count(&res.FollowingCount).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.followState(actorID, targetID)
	}
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return res, nil
}

func (s *ToggleService) followState(actorID, targetID uint) (*FollowResult, error) {
	res := &FollowResult{}
	var mine int64
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ? AND followed_id = ?", actorID, targetID).Count(&mine).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	res.Following = mine > 0
	if err := s.db.Model(&models.Follow{}).Where("followed_id = ?", targetID).Count(&res.FollowersCount).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ?", targetID).Count(&res.FollowingCount).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return res, nil
}

// ToggleSave bookmarks the post or removes the bookmark. Saves never notify.
func (s *ToggleService) ToggleSave(actorID, postID uint) (*SaveResult, error) {
	res := &SaveResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		var saved models.SavedPost
		err := tx.Where("user_id = ? AND post_id = ?", actorID, postID).First(&saved).Error
		switch {
		case err == nil:
			if err := tx.Delete(&saved).Error; err != nil {
				return err
			}
			res.Saved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.SavedPost{UserID: actorID, PostID: postID}).Error; err != nil {
				return err
			}
			res.Saved = true
		default:
			return err
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return s.saveState(actorID, postID)
	}
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return res, nil
}

func (s *ToggleService) saveState(actorID, postID uint) (*SaveResult, error) {
	var mine int64
	if err := s.db.Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", actorID, postID).Count(&mine).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return &SaveResult{Saved: mine > 0}, nil
}
