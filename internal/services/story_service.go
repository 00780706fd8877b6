package services

import (
	"strings"
	"time"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// StoryService creates stories. Expiry is stamped server-side at creation;
// expired stories are filtered on read and never purged.
type StoryService struct {
	db *gorm.DB
}

// NewStoryService creates a new StoryService
func NewStoryService(db *gorm.DB) *StoryService {
	return &StoryService{db: db}
}

// CreateStory creates a story that expires StoryTTL after creation.
func (s *StoryService) CreateStory(actorID uint, imageURL string) (*models.Story, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apperrors.ErrInvalidInput
	}

	now := time.Now()
	story := &models.Story{
		ImageURL:  imageURL,
		UserID:    actorID,
		CreatedAt: now,
		ExpiresAt: now.Add(models.StoryTTL),
	}
	if err := s.db.Create(story).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return story, nil
}
