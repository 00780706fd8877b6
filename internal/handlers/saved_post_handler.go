package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles the bookmark toggle
type SavedPostHandler struct {
	toggleService *services.ToggleService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(toggleService *services.ToggleService) *SavedPostHandler {
	return &SavedPostHandler{toggleService: toggleService}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/save", h.ToggleSave)
}

// ToggleSave flips the current user's bookmark on a post
func (h *SavedPostHandler) ToggleSave(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	result, err := h.toggleService.ToggleSave(getUserIDFromContext(c), uint(postID))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}
