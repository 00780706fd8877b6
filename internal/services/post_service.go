package services

import (
	"strings"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// PostService creates and deletes posts. Deletion owns the cascade: the four
// dependent sets (comments, likes, saved posts, notifications) go in the same
// transaction as the post row.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// CreatePost creates a post. The image URL is required, the caption optional.
func (s *PostService) CreatePost(actorID uint, caption, imageURL string) (*models.Post, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apperrors.ErrInvalidInput
	}

	post := &models.Post{
		Caption:  caption,
		ImageURL: imageURL,
		UserID:   actorID,
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return post, nil
}

// DeletePost removes a post and everything that references it. Only the owner
// may delete. The dependent sets are deleted explicitly so the cascade never
// depends on implicit store behavior.
func (s *PostService) DeletePost(actorID, postID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return apperrors.FromStore(err)
		}
		if post.UserID != actorID {
			return apperrors.ErrUnauthorized
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	return apperrors.FromStore(err)
}
