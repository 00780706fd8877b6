package services

import (
	"errors"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/logger"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// notificationPageLimit caps how many notifications a single view returns.
const notificationPageLimit = 50

// NotificationService lists notifications and maintains their read state.
type NotificationService struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(db *gorm.DB, userRepo repositories.UserRepository, notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{db: db, userRepo: userRepo, notificationRepo: notificationRepo}
}

// NotificationItem is a notification with its actor attached
type NotificationItem struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

// List returns the recipient's latest notifications, newest first. Viewing is
// the read transition: every returned unread notification is marked read in
// the same transaction that selected it.
func (s *NotificationService) List(actorID uint) ([]NotificationItem, error) {
	var notifications []models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("recipient_id = ?", actorID).
			Order("created_at DESC").
			Limit(notificationPageLimit).
			Find(&notifications).Error
		if err != nil {
			return err
		}

		unreadIDs := make([]uint, 0, len(notifications))
		for _, n := range notifications {
			if !n.IsRead {
				unreadIDs = append(unreadIDs, n.ID)
			}
		}
		if len(unreadIDs) == 0 {
			return nil
		}
		err = tx.Model(&models.Notification{}).
			Where("id IN ?", unreadIDs).
			Update("is_read", true).Error
		if err != nil {
			return err
		}
		// Reflect the read transition in the returned slice.
		for i := range notifications {
			notifications[i].IsRead = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(apperrors.FromStore(err), apperrors.ErrStoreUnavailable) {
			logger.Warn("store not initialized, returning no notifications", "error", err)
			return []NotificationItem{}, nil
		}
		return nil, apperrors.FromStore(err)
	}

	items := make([]NotificationItem, len(notifications))
	actorCache := make(map[uint]models.UserCompact)
	for i, n := range notifications {
		items[i] = NotificationItem{Notification: n}
		actor, ok := actorCache[n.ActorID]
		if !ok {
			user, err := s.userRepo.GetUserByID(n.ActorID)
			if err != nil {
				return nil, apperrors.FromStore(err)
			}
			actor = user.ToCompact()
			actorCache[n.ActorID] = actor
		}
		items[i].Actor = actor
	}
	return items, nil
}

// UnreadCount returns the number of unread notifications. An uninitialized
// store degrades to zero so the badge poll never errors a page.
func (s *NotificationService) UnreadCount(actorID uint) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(actorID)
	if err != nil {
		if errors.Is(apperrors.FromStore(err), apperrors.ErrStoreUnavailable) {
			logger.Warn("store not initialized, unread count degrading to 0", "error", err)
			return 0, nil
		}
		return 0, apperrors.FromStore(err)
	}
	return count, nil
}
