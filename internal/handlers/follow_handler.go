package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles the follow toggle
type FollowHandler struct {
	toggleService *services.ToggleService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(toggleService *services.ToggleService) *FollowHandler {
	return &FollowHandler{toggleService: toggleService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the current user's follow on the target and returns the
// new state plus the target's fresh counts
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	result, err := h.toggleService.ToggleFollow(getUserIDFromContext(c), uint(targetID))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}
