package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/chatlog"
	"github.com/partage-labs/partage/internal/domain"
	"github.com/partage-labs/partage/internal/middleware"
	"github.com/partage-labs/partage/internal/session"
)

// ChatHandler serves the chat history and message sends.
type ChatHandler struct {
	log         *chatlog.Log
	coordinator *session.Coordinator
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(log *chatlog.Log, coordinator *session.Coordinator) *ChatHandler {
	return &ChatHandler{log: log, coordinator: coordinator}
}

// Messages handles GET /api/chat/messages: the last 50 messages, oldest first.
func (h *ChatHandler) Messages(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageListResponse{
		Messages: h.log.Recent(chatlog.DefaultRecentLimit),
	})
}

// Send handles POST /api/chat/send.
func (h *ChatHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID and message are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID and message are required"})
	}

	msg, err := h.coordinator.SendMessage(c.Request().Context(), req.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID and message are required"})
		case errors.Is(err, domain.ErrUnknownUser):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			middleware.FromContext(c.Request().Context()).Error("Failed to send message", "error", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not send the message"})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":      "Message sent",
		"chat_message": msg,
	})
}
