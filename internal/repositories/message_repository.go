package repositories

import (
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct-message reads
type MessageRepository interface {
	GetMessagesInvolving(userID uint) ([]models.Message, error)
}

type postgresMessageRepository struct {
	db *gorm.DB
}

func NewPostgresMessageRepository(db *gorm.DB) MessageRepository {
	return &postgresMessageRepository{db: db}
}

// GetMessagesInvolving returns every message the user sent or received,
// newest first. Used to derive the conversation list.
func (r *postgresMessageRepository) GetMessagesInvolving(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}
