package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles the like toggle
type LikeHandler struct {
	toggleService *services.ToggleService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(toggleService *services.ToggleService) *LikeHandler {
	return &LikeHandler{toggleService: toggleService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.ToggleLike)
}

// ToggleLike flips the current user's like on a post and returns the new
// state plus the fresh like count
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	result, err := h.toggleService.ToggleLike(getUserIDFromContext(c), uint(postID))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}
