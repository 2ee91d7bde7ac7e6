package http

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bricsbtc/internal/delivery/http/dto"
	"bricsbtc/internal/domain"
	"bricsbtc/internal/middleware"
	"bricsbtc/internal/repository"
)

// MessageHandler handles the polled user-to-admin chat and notifications
type MessageHandler struct {
	messageRepo      domain.MessageRepository
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	messageRepo domain.MessageRepository,
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
) *MessageHandler {
	return &MessageHandler{
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Send stores a chat message. The sender must be the authenticated user.
// POST /api/v1/messages
func (h *MessageHandler) Send(c echo.Context) error {
	authedID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	senderID, err := uuid.Parse(req.SenderID)
	if err != nil {
		return BadRequestResponse(c, "Invalid sender ID")
	}
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return BadRequestResponse(c, "Invalid receiver ID")
	}
	if senderID != authedID {
		return ForbiddenResponse(c, "You can only send as yourself")
	}
	if req.Content == "" {
		return BadRequestResponse(c, "Message cannot be empty")
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.messageRepo.Create(ctx, msg); err != nil {
		return InternalServerErrorResponse(c, "Failed to send message", err)
	}

	return CreatedResponse(c, msg)
}

// Conversation returns the messages between the authenticated user and the
// given peer, oldest first. Clients poll this endpoint.
// GET /api/v1/messages/:peerId
func (h *MessageHandler) Conversation(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	peerID, err := uuid.Parse(c.Param("peerId"))
	if err != nil {
		return BadRequestResponse(c, "Invalid peer ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	messages, err := h.messageRepo.GetConversation(ctx, userID, peerID, 200)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get conversation", err)
	}

	return SuccessResponse(c, messages)
}

// Admins returns the support contacts a user can message
// GET /api/v1/messages/admins
func (h *MessageHandler) Admins(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admins, err := h.userRepo.GetAdmins(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get admins", err)
	}

	contacts := make([]*domain.OfferOwner, 0, len(admins))
	for _, a := range admins {
		contacts = append(contacts, &domain.OfferOwner{ID: a.ID, FullName: a.FullName, Country: a.Country})
	}

	return SuccessResponse(c, contacts)
}

// Notifications lists the authenticated user's notifications, newest first
// GET /api/v1/notifications
func (h *MessageHandler) Notifications(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notifications, err := h.notificationRepo.GetByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get notifications", err)
	}

	return SuccessResponse(c, notifications)
}

// UnreadCount returns the badge count. Clients poll this endpoint.
// GET /api/v1/notifications/unread
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	count, err := h.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to count notifications", err)
	}

	return SuccessResponse(c, map[string]int{"count": count})
}

// MarkRead marks one of the authenticated user's notifications as read
// PUT /api/v1/notifications/:id/read
func (h *MessageHandler) MarkRead(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid notification ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Notification not found")
		}
		return InternalServerErrorResponse(c, "Failed to mark notification", err)
	}

	return SuccessMessageResponse(c, "Notification marked as read", nil)
}
