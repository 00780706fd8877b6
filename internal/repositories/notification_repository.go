package repositories

import (
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification reads that
// need no read-state transition. Listing lives in the notification service
// because it marks rows read in the same transaction that selects them.
type NotificationRepository interface {
	GetUnreadCount(recipientID uint) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}
