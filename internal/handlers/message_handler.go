package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetConversations)
	g.GET("/messages/:user_id", h.GetConversation)
	g.POST("/messages", h.SendMessage)
}

// GetConversations lists the users the current user has messaged with
func (h *MessageHandler) GetConversations(c echo.Context) error {
	partners, err := h.messageService.Conversations(getUserIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"conversations": partners}})
}

// GetConversation returns all messages with the other user and marks the
// current user's side read
func (h *MessageHandler) GetConversation(c echo.Context) error {
	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	messages, err := h.messageService.Conversation(getUserIDFromContext(c), uint(otherID))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"messages": messages}})
}

// SendMessage sends a direct message to the named recipient
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.messageService.SendMessage(getUserIDFromContext(c), req.RecipientUsername, req.Text)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": result})
}
