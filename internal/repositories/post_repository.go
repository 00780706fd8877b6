package repositories

import (
	"github.com/anonto42/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetPostByID(id uint) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	GetPostsExcludingAuthors(authorIDs []uint) ([]models.Post, error)
	GetPostsByHashtag(tag string) ([]models.Post, error)
	GetPostsByIDs(ids []uint) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts returns every post, newest first. The platform-wide feed is
// deliberately not filtered by the follow graph.
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID returns a user's posts, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsExcludingAuthors returns posts whose author is not in authorIDs,
// newest first. An empty exclusion list returns everything.
func (r *PostgresPostRepository) GetPostsExcludingAuthors(authorIDs []uint) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.Order("created_at DESC")
	if len(authorIDs) > 0 {
		q = q.Where("user_id NOT IN ?", authorIDs)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByHashtag matches "#tag" case-insensitively inside captions, newest first.
func (r *PostgresPostRepository) GetPostsByHashtag(tag string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Where("LOWER(caption) LIKE LOWER(?)", "%#"+tag+"%").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByIDs retrieves the posts for the given ids
func (r *PostgresPostRepository) GetPostsByIDs(ids []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
