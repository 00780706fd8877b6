package handlers

import (
	"net/http"

	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles the read-only query routes: feed, explore, hashtag,
// saved posts and story carousel.
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/explore", h.GetExplore)
	g.GET("/hashtag/:tag", h.GetHashtag)
	g.GET("/saved", h.GetSavedPosts)
	g.GET("/stories", h.GetActiveStories)
}

// GetFeed returns every post, newest first, enriched for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.feedService.Feed(getUserIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetExplore returns posts from authors the current user does not follow
func (h *FeedHandler) GetExplore(c echo.Context) error {
	posts, err := h.feedService.Explore(getUserIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetHashtag returns posts whose caption carries the tag
func (h *FeedHandler) GetHashtag(c echo.Context) error {
	posts, err := h.feedService.Hashtag(getUserIDFromContext(c), c.Param("tag"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetSavedPosts returns the current user's bookmarks as posts
func (h *FeedHandler) GetSavedPosts(c echo.Context) error {
	posts, err := h.feedService.SavedPosts(getUserIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetActiveStories returns unexpired stories grouped per owner
func (h *FeedHandler) GetActiveStories(c echo.Context) error {
	groups, err := h.feedService.ActiveStories(getUserIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"stories": groups}})
}
