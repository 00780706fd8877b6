package services

import (
	"errors"
	"strings"
	"time"

	"github.com/anonto42/pixelgram/backend/internal/apperrors"
	"github.com/anonto42/pixelgram/backend/internal/logger"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// FeedService is the read-only query side: feeds, profiles, search, hashtags,
// saved posts and active stories. List reads degrade to empty results with a
// warning when the store has not been migrated yet.
type FeedService struct {
	db            *gorm.DB
	postRepo      repositories.PostRepository
	userRepo      repositories.UserRepository
	followRepo    repositories.FollowRepository
	likeRepo      repositories.LikeRepository
	savedPostRepo repositories.SavedPostRepository
	commentRepo   repositories.CommentRepository
	storyRepo     repositories.StoryRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(
	db *gorm.DB,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	savedPostRepo repositories.SavedPostRepository,
	commentRepo repositories.CommentRepository,
	storyRepo repositories.StoryRepository,
) *FeedService {
	return &FeedService{
		db:            db,
		postRepo:      postRepo,
		userRepo:      userRepo,
		followRepo:    followRepo,
		likeRepo:      likeRepo,
		savedPostRepo: savedPostRepo,
		commentRepo:   commentRepo,
		storyRepo:     storyRepo,
	}
}

// EnrichedPost is a post with author info, counts and viewer-specific flags
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	LikeCount    int64              `json:"like_count"`
	CommentCount int64              `json:"comment_count"`
	IsLiked      bool               `json:"is_liked"`
	IsSaved      bool               `json:"is_saved"`
}

// ProfileResult carries a user's posts plus the graph counts the profile page shows
type ProfileResult struct {
	User           models.UserCompact `json:"user"`
	Posts          []EnrichedPost     `json:"posts"`
	FollowersCount int64              `json:"followers_count"`
	FollowingCount int64              `json:"following_count"`
	IsFollowing    bool               `json:"is_following"`
}

// CommentItem is a comment with its author attached
type CommentItem struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// PostDetailResult is a single post with its comment thread
type PostDetailResult struct {
	EnrichedPost
	Comments []CommentItem `json:"comments"`
}

// StoryGroup is one user's active stories for the client-side carousel
type StoryGroup struct {
	User    models.UserCompact `json:"user"`
	Stories []models.Story     `json:"stories"`
}

// storeUnavailable reports whether err means the schema has not been migrated
// yet, logging the degradation when it has not.
func storeUnavailable(op string, err error) bool {
	if errors.Is(apperrors.FromStore(err), apperrors.ErrStoreUnavailable) {
		logger.Warn("store not initialized, returning empty result", "op", op, "error", err)
		return true
	}
	return false
}

// Feed returns every post, newest first, enriched for the viewer. The
// platform-wide feed is intentionally not restricted to followed authors.
func (s *FeedService) Feed(viewerID uint) ([]EnrichedPost, error) {
	posts, err := s.postRepo.GetAllPosts()
	if err != nil {
		if storeUnavailable("feed", err) {
			return []EnrichedPost{}, nil
		}
		return nil, apperrors.FromStore(err)
	}
	return s.enrichPosts(viewerID, posts)
}

// Explore returns posts from authors the viewer does not follow, newest
// first. The viewer's own posts are included: "not followed" only excludes
// other users in the followed set.
func (s *FeedService) Explore(viewerID uint) ([]EnrichedPost, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(viewerID)
	if err != nil {
		if storeUnavailable("explore", err) {
			return []EnrichedPost{}, nil
		}
		return nil, apperrors.FromStore(err)
	}

	posts, err := s.postRepo.GetPostsExcludingAuthors(followingIDs)
	if err != nil {
		if storeUnavailable("explore", err) {
			return []EnrichedPost{}, nil
		}
		return nil, apperrors.FromStore(err)
	}
	return s.enrichPosts(viewerID, posts)
}

// Profile returns the user's posts with graph counts, as seen by viewerID.
func (s *FeedService) Profile(viewerID, userID uint) (*ProfileResult, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return s.profileFor(viewerID, user)
}

// ProfileByUsername resolves a username and returns the same profile payload.
func (s *FeedService) ProfileByUsername(viewerID uint, username string) (*ProfileResult, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return s.profileFor(viewerID, user)
}

func (s *FeedService) profileFor(viewerID uint, user *models.User) (*ProfileResult, error) {
	posts, err := s.postRepo.GetPostsByUserID(user.ID)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	enriched, err := s.enrichPosts(viewerID, posts)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.GetFollowersCount(user.ID)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	following, err := s.followRepo.GetFollowingCount(user.ID)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	isFollowing := false
	if viewerID != user.ID {
		isFollowing, err = s.followRepo.IsFollowing(viewerID, user.ID)
		if err != nil {
			return nil, apperrors.FromStore(err)
		}
	}

	return &ProfileResult{
		User:           user.ToCompact(),
		Posts:          enriched,
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

// PostDetail returns one post enriched for the viewer, with its comment
// thread oldest first.
func (s *FeedService) PostDetail(viewerID, postID uint) (*PostDetailResult, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	enriched, err := s.enrichPosts(viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetCommentsByPostID(postID)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	items := make([]CommentItem, len(comments))
	authorCache := make(map[uint]models.UserCompact)
	for i, comment := range comments {
		author, ok := authorCache[comment.UserID]
		if !ok {
			user, err := s.userRepo.GetUserByID(comment.UserID)
			if err != nil {
				return nil, apperrors.FromStore(err)
			}
			author = user.ToCompact()
			authorCache[comment.UserID] = author
		}
		items[i] = CommentItem{Comment: comment, Author: author}
	}

	return &PostDetailResult{EnrichedPost: enriched[0], Comments: items}, nil
}

// SearchUsers matches a case-insensitive substring over username or fullname,
// capped at 20 results. An empty query returns nothing without touching the
// store.
func (s *FeedService) SearchUsers(query string) ([]models.UserCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserCompact{}, nil
	}

	users, err := s.userRepo.SearchUsers(query)
	if err != nil {
		if storeUnavailable("search", err) {
			return []models.UserCompact{}, nil
		}
		return nil, apperrors.FromStore(err)
	}

	results := make([]models.UserCompact, len(users))
	for i := range users {
		results[i] = users[i].ToCompact()
	}
	return results, nil
}

// Hashtag returns posts whose caption contains "#tag", newest first.
func (s *FeedService) Hashtag(viewerID uint, tag string) ([]EnrichedPost, error) {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return []EnrichedPost{}, nil
	}

	posts, err := s.postRepo.GetPostsByHashtag(tag)
	if err != nil {
		if storeUnavailable("hashtag", err) {
			return []EnrichedPost{}, nil
		}
		return nil, apperrors.FromStore(err)
	}
	return s.enrichPosts(viewerID, posts)
}

// SavedPosts materializes the viewer's bookmarks into posts, newest-saved first.
func (s *FeedService) SavedPosts(viewerID uint) ([]EnrichedPost, error) {
	saved, err := s.savedPostRepo.GetSavedPostsByUser(viewerID)
	if err != nil {
		if storeUnavailable("saved_posts", err) {
			return []EnrichedPost{}, nil
		}
		return nil, apperrors.FromStore(err)
	}

	ids := make([]uint, len(saved))
	for i, sp := range saved {
		ids[i] = sp.PostID
	}
	posts, err := s.postRepo.GetPostsByIDs(ids)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	// Preserve save order, newest first.
	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]models.Post, 0, len(saved))
	for _, sp := range saved {
		if p, ok := byID[sp.PostID]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.enrichPosts(viewerID, ordered)
}

// ActiveStories returns unexpired stories from the viewer and everyone the
// viewer follows, grouped per owner for carousel rendering. Groups keep the
// newest-first story order.
func (s *FeedService) ActiveStories(viewerID uint) ([]StoryGroup, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(viewerID)
	if err != nil {
		if storeUnavailable("stories", err) {
			return []StoryGroup{}, nil
		}
		return nil, apperrors.FromStore(err)
	}
	ownerIDs := append([]uint{viewerID}, followingIDs...)

	stories, err := s.storyRepo.GetActiveStoriesForUsers(ownerIDs, time.Now())
	if err != nil {
		if storeUnavailable("stories", err) {
			return []StoryGroup{}, nil
		}
		return nil, apperrors.FromStore(err)
	}

	groups := []StoryGroup{}
	index := make(map[uint]int)
	for _, story := range stories {
		i, ok := index[story.UserID]
		if !ok {
			owner, err := s.userRepo.GetUserByID(story.UserID)
			if err != nil {
				return nil, apperrors.FromStore(err)
			}
			i = len(groups)
			index[story.UserID] = i
			groups = append(groups, StoryGroup{User: owner.ToCompact()})
		}
		groups[i].Stories = append(groups[i].Stories, story)
	}
	return groups, nil
}

// enrichPosts attaches author info, like/comment counts and viewer flags.
func (s *FeedService) enrichPosts(viewerID uint, posts []models.Post) ([]EnrichedPost, error) {
	enriched := make([]EnrichedPost, len(posts))
	if len(posts) == 0 {
		return enriched, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := s.countByPost(&models.Like{}, postIDs)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	commentCounts, err := s.countByPost(&models.Comment{}, postIDs)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	likedMap, err := s.likeRepo.GetLikedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	savedMap, err := s.savedPostRepo.GetSavedPostIDs(viewerID, postIDs)
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	authorCache := make(map[uint]models.UserCompact)
	for i, p := range posts {
		author, ok := authorCache[p.UserID]
		if !ok {
			user, err := s.userRepo.GetUserByID(p.UserID)
			if err != nil {
				return nil, apperrors.FromStore(err)
			}
			author = user.ToCompact()
			authorCache[p.UserID] = author
		}
		enriched[i] = EnrichedPost{
			Post:         p,
			Author:       author,
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			IsLiked:      likedMap[p.ID],
			IsSaved:      savedMap[p.ID],
		}
	}
	return enriched, nil
}

func (s *FeedService) countByPost(model interface{}, postIDs []uint) (map[uint]int64, error) {
	type row struct {
		PostID uint  `gorm:"column:post_id"`
		Total  int64 `gorm:"column:total"`
	}
	var rows []row
	err := s.db.Model(model).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	return counts, nil
}
