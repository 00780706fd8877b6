package services

import (
	"strings"
	"time"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// commentTimeFormat is the display format for comment and message timestamps.
const commentTimeFormat = "Jan 02, 2006 15:04"

// CommentService creates and deletes comments together with their
// notifications.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CommentResult is the payload returned after creating a comment
type CommentResult struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}

// AddComment creates a comment on the post. Whitespace-only text is rejected
// before any write. When the actor is not the post owner, a comment
// notification referencing the new comment is created in the same transaction.
func (s *CommentService) AddComment(actorID, postID uint, text string) (*CommentResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrInvalidInput
	}

	res := &CommentResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		var author models.User
		if err := tx.First(&author, actorID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		comment := &models.Comment{Text: text, UserID: actorID, PostID: postID}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if post.UserID != actorID {
			notif := &models.Notification{
				Type:        models.NotificationTypeComment,
				RecipientID: post.UserID,
				ActorID:     actorID,
				PostID:      &post.ID,
				CommentID:   &comment.ID,
			}
			if err := tx.Create(notif).Error; err != nil {
				return err
			}
		}

		res.ID = comment.ID
		res.Text = comment.Text
		res.AuthorName = author.Fullname
		res.CreatedAt = comment.CreatedAt.Format(commentTimeFormat)
		return nil
	})
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return res, nil
}

// DeleteComment removes a comment. Allowed for the comment's author and for
// the owner of the post it sits on; anyone else gets ErrUnauthorized.
// Comment notifications referencing the comment are removed with it.
func (s *CommentService) DeleteComment(actorID, commentID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		var post models.Post
		if err := tx.First(&post, comment.PostID).Error; err != nil {
			return apperrors.FromStore(err)
		}

		if actorID != comment.UserID && actorID != post.UserID {
			return apperrors.ErrUnauthorized
		}

		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	return apperrors.FromStore(err)
}

// formatTimestamp is shared by the message service.
func formatTimestamp(t time.Time) string {
	return t.Format(commentTimeFormat)
}
