package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/repositories"
	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedService(db *gorm.DB) *services.FeedService {
	return services.NewFeedService(
		db,
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresSavedPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewStoryRepository(db),
	)
}

func TestFeedNewestFirstAndEnriched(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	toggleSvc := services.NewToggleService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	older := createPost(t, db, bob.ID, "old", time.Now().Add(-time.Hour))
	newer := createPost(t, db, bob.ID, "new", time.Now())

	_, err := toggleSvc.ToggleLike(alice.ID, older.ID)
	require.NoError(t, err)

	posts, err := svc.Feed(alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	assert.Equal(t, "bob", posts[1].Author.Username)
	assert.Equal(t, int64(1), posts[1].LikeCount)
	assert.True(t, posts[1].IsLiked)
	assert.False(t, posts[0].IsLiked)
}

func TestExploreExcludesFollowedAuthors(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	toggleSvc := services.NewToggleService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	mine := createPost(t, db, alice.ID, "", time.Now())
	followed := createPost(t, db, bob.ID, "", time.Now())
	unfollowed := createPost(t, db, carol.ID, "", time.Now())

	_, err := toggleSvc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	posts, err := svc.Explore(alice.ID)
	require.NoError(t, err)

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, unfollowed.ID)
	assert.NotContains(t, ids, followed.ID)
}

func TestSearchUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)

	createUser(t, db, "alice")
	db.Create(&models.User{Username: "bob", Fullname: "Robert Alicesson", PasswordHash: "x"})

	// empty query returns nothing without touching the store
	results, err := svc.SearchUsers("   ")
	require.NoError(t, err)
	assert.Empty(t, results)

	// case-insensitive over username and fullname
	results, err = svc.SearchUsers("ALIC")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchUsersCapped(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)

	for i := 0; i < 25; i++ {
		createUser(t, db, fmt.Sprintf("member%02d", i))
	}

	results, err := svc.SearchUsers("member")
	require.NoError(t, err)
	assert.Len(t, results, repositories.SearchResultLimit)
}

func TestHashtag(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	alice := createUser(t, db, "alice")

	tagged := createPost(t, db, alice.ID, "golden hour #Sunset vibes", time.Now())
	createPost(t, db, alice.ID, "no tags here", time.Now())

	posts, err := svc.Hashtag(alice.ID, "sunset")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, tagged.ID, posts[0].ID)

	// a leading # in the query is tolerated
	posts, err = svc.Hashtag(alice.ID, "#SUNSET")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestSavedPostsNewestSaveFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	first := createPost(t, db, bob.ID, "", time.Now().Add(-2*time.Hour))
	second := createPost(t, db, bob.ID, "", time.Now().Add(-time.Hour))

	require.NoError(t, db.Create(&models.SavedPost{UserID: alice.ID, PostID: first.ID, CreatedAt: time.Now()}).Error)
	require.NoError(t, db.Create(&models.SavedPost{UserID: alice.ID, PostID: second.ID, CreatedAt: time.Now().Add(-time.Minute)}).Error)

	posts, err := svc.SavedPosts(alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	assert.True(t, posts[0].IsSaved)
}

func TestActiveStoriesExpiryAndGraph(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	toggleSvc := services.NewToggleService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	_, err := toggleSvc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	now := time.Now()
	// active story from a followed user
	require.NoError(t, db.Create(&models.Story{ImageURL: "u1", UserID: bob.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}).Error)
	// expired story from the same user: row survives, read filters it
	require.NoError(t, db.Create(&models.Story{ImageURL: "u2", UserID: bob.ID, CreatedAt: now.Add(-25 * time.Hour), ExpiresAt: now.Add(-time.Hour)}).Error)
	// active story from a non-followed user
	require.NoError(t, db.Create(&models.Story{ImageURL: "u3", UserID: carol.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}).Error)
	// the viewer's own story
	require.NoError(t, db.Create(&models.Story{ImageURL: "u4", UserID: alice.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}).Error)

	groups, err := svc.ActiveStories(alice.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	owners := []string{groups[0].User.Username, groups[1].User.Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, owners)
	for _, g := range groups {
		require.Len(t, g.Stories, 1)
		assert.True(t, g.Stories[0].ExpiresAt.After(now))
	}

	// the expired row still exists
	assert.Equal(t, int64(2), countRows(t, db, &models.Story{}, "user_id = ?", bob.ID))
}

func TestProfileCountsAndFollowFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	toggleSvc := services.NewToggleService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	createPost(t, db, bob.ID, "", time.Now())

	_, err := toggleSvc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = toggleSvc.ToggleFollow(bob.ID, carol.ID)
	require.NoError(t, err)

	profile, err := svc.Profile(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.User.Username)
	assert.Len(t, profile.Posts, 1)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.Equal(t, int64(1), profile.FollowingCount)
	assert.True(t, profile.IsFollowing)

	byName, err := svc.ProfileByUsername(carol.ID, "bob")
	require.NoError(t, err)
	assert.False(t, byName.IsFollowing)
}

func TestPostDetail(t *testing.T) {
	db := setupTestDB(t)
	svc := newFeedService(db)
	commentSvc := services.NewCommentService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, bob.ID, "caption", time.Now())

	_, err := commentSvc.AddComment(alice.ID, post.ID, "first")
	require.NoError(t, err)

	detail, err := svc.PostDetail(alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, detail.ID)
	assert.Equal(t, int64(1), detail.CommentCount)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "alice", detail.Comments[0].Author.Username)
}

func TestFeedDegradesWhenStoreUnmigrated(t *testing.T) {
	db := setupUnmigratedDB(t)
	svc := newFeedService(db)

	posts, err := svc.Feed(1)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
