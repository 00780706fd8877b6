package services_test

import (
	"testing"
	"time"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPostService(db)
	alice := createUser(t, db, "alice")

	post, err := svc.CreatePost(alice.ID, "hello #world", "https://img.example.com/1.jpg")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, alice.ID, post.UserID)
}

func TestCreatePostRejectsEmptyImageURL(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPostService(db)
	alice := createUser(t, db, "alice")

	_, err := svc.CreatePost(alice.ID, "caption only", "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, int64(0), countRows(t, db, &models.Post{}, ""))
}

func TestDeletePostCascade(t *testing.T) {
	db := setupTestDB(t)
	postSvc := services.NewPostService(db)
	toggleSvc := services.NewToggleService(db)
	commentSvc := services.NewCommentService(db)

	owner := createUser(t, db, "owner")
	fan := createUser(t, db, "fan")
	post := createPost(t, db, owner.ID, "", time.Now())
	other := createPost(t, db, owner.ID, "survivor", time.Now())

	_, err := toggleSvc.ToggleLike(fan.ID, post.ID)
	require.NoError(t, err)
	_, err = commentSvc.AddComment(fan.ID, post.ID, "wow")
	require.NoError(t, err)
	_, err = toggleSvc.ToggleSave(fan.ID, post.ID)
	require.NoError(t, err)

	// unrelated rows on the other post must survive
	_, err = toggleSvc.ToggleLike(fan.ID, other.ID)
	require.NoError(t, err)

	require.NoError(t, postSvc.DeletePost(owner.ID, post.ID))

	assert.Equal(t, int64(0), countRows(t, db, &models.Comment{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), countRows(t, db, &models.Like{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), countRows(t, db, &models.SavedPost{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), countRows(t, db, &models.Notification{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), countRows(t, db, &models.Post{}, "id = ?", post.ID))

	assert.Equal(t, int64(1), countRows(t, db, &models.Post{}, "id = ?", other.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Like{}, "post_id = ?", other.ID))
	assert.Equal(t, int64(1), countRows(t, db, &models.Notification{}, "post_id = ?", other.ID))
}

func TestDeletePostOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPostService(db)

	owner := createUser(t, db, "owner")
	stranger := createUser(t, db, "stranger")
	post := createPost(t, db, owner.ID, "", time.Now())

	err := svc.DeletePost(stranger.ID, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, int64(1), countRows(t, db, &models.Post{}, ""))

	err = svc.DeletePost(owner.ID, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
