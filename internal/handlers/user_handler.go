package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and user search HTTP requests
type UserHandler struct {
	feedService *services.FeedService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(feedService *services.FeedService) *UserHandler {
	return &UserHandler{feedService: feedService}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetProfile)
	g.GET("/users/username/:username", h.GetProfileByUsername)
}

// SearchUsers searches for users by a query string over username or fullname
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.feedService.SearchUsers(c.QueryParam("q"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// GetProfile returns a user's posts plus follower/following counts by user id
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	profile, err := h.feedService.Profile(getUserIDFromContext(c), uint(id))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}

// GetProfileByUsername returns the same profile payload looked up by username
func (h *UserHandler) GetProfileByUsername(c echo.Context) error {
	profile, err := h.feedService.ProfileByUsername(getUserIDFromContext(c), c.Param("username"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}
