package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment creation and deletion
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.AddComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// AddComment creates a comment on a post
func (h *CommentHandler) AddComment(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.commentService.AddComment(getUserIDFromContext(c), uint(postID), req.Text)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": result})
}

// DeleteComment removes a comment; comment author or post owner only
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.commentService.DeleteComment(getUserIDFromContext(c), uint(id)); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"ok": true}})
}
