package repositories

import (
	"time"

	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	GetActiveStoriesForUsers(userIDs []uint, now time.Time) ([]models.Story, error)
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

// GetActiveStoriesForUsers returns unexpired stories owned by the given users,
// newest first. Expiry is strict: a story whose expires_at equals now is gone.
func (r *storyRepository) GetActiveStoriesForUsers(userIDs []uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	if len(userIDs) == 0 {
		return stories, nil
	}
	err := r.db.
		Where("user_id IN ? AND expires_at > ?", userIDs, now).
		Order("created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}
