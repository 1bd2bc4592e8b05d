package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type SessionService interface {
	StartSession(ctx context.Context, userID uuid.UUID) (*models.Conversation, error)
	Authorize(ctx context.Context, conversationID, userID uuid.UUID) (*models.Conversation, error)
}

type ChatService interface {
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, body string) (*models.Message, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID) (*models.Conversation, []*models.Message, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, userID, conversationID uuid.UUID, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

const streamKeepAlive = 25 * time.Second

type ChatHandler struct {
	sessions   SessionService
	chat       ChatService
	feedback   FeedbackService
	subscriber realtime.Subscriber
	keepAlive  time.Duration
	logger     *zap.Logger
}

func NewChatHandler(sessions SessionService, chat ChatService, feedback FeedbackService, subscriber realtime.Subscriber, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		sessions:   sessions,
		chat:       chat,
		feedback:   feedback,
		subscriber: subscriber,
		keepAlive:  streamKeepAlive,
		logger:     logger,
	}
}

// StartSession godoc
// @Summary Start a support chat
// @Description Close the caller's open chats and start a new one
// @Tags chat
// @Produce json
// @Security Bearer
// @Success 201 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/chat/sessions [post]
func (h *ChatHandler) StartSession(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	conv, err := h.sessions.StartSession(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to start chat")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		ID:        conv.ID.String(),
		State:     string(conv.State),
		CreatedAt: formatTime(conv.CreatedAt),
		Message:   "Chat creado correctamente",
	})
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Store the message and queue the agent's answer, delivered on the stream
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Security Bearer
// @Success 202 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/chat/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req dto.SendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to send message")
	}

	msg, err := h.chat.SendMessage(c.Context(), userID, convID, req.Message)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to send message")
	}

	username, _ := c.Locals("username").(string)
	return c.Status(fiber.StatusAccepted).JSON(toMessageResponse(msg, username))
}

// ListMessages godoc
// @Summary Get the chat transcript
// @Tags chat
// @Produce json
// @Param id path string true "Conversation ID"
// @Security Bearer
// @Success 200 {object} dto.MessagesResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/chat/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	conv, msgs, err := h.chat.ListMessages(c.Context(), userID, convID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get messages")
	}

	username, _ := c.Locals("username").(string)
	resp := dto.MessagesResponse{
		ConversationID: conv.ID.String(),
		State:          string(conv.State),
		Messages:       make([]dto.MessageResponse, 0, len(msgs)),
	}
	for _, m := range msgs {
		resp.Messages = append(resp.Messages, toMessageResponse(m, username))
	}
	return c.JSON(resp)
}

// SubmitFeedback godoc
// @Summary Answer the proposed solution
// @Description Confirm or reject the last solution. Rejecting a knowledge base answer retries with AI, rejecting an AI answer escalates to a technician.
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.FeedbackRequest true "Feedback"
// @Security Bearer
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/chat/{id}/feedback [post]
func (h *ChatHandler) SubmitFeedback(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req dto.FeedbackRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to process feedback")
	}

	resp, err := h.feedback.Submit(c.Context(), userID, convID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to process feedback")
	}
	return c.JSON(resp)
}

// Stream godoc
// @Summary Stream agent messages
// @Description Server-sent events with every message the agent posts to the conversation. The token may be passed as access_token.
// @Tags chat
// @Produce text/event-stream
// @Param id path string true "Conversation ID"
// @Security Bearer
// @Success 200 {object} realtime.MessageEvent
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/chat/{id}/stream [get]
func (h *ChatHandler) Stream(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	if _, err := h.sessions.Authorize(c.Context(), convID, userID); err != nil {
		return respondError(c, h.logger, err, "Failed to open stream")
	}

	// The subscription outlives the request context once streaming starts.
	events, cancel, err := h.subscriber.Subscribe(context.Background(), convID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to open stream")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	logger := h.logger.With(zap.String("conversation_id", convID.String()))
	keepAlive := h.keepAlive

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					logger.Warn("Failed to encode event", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "id: %s\nevent: message\ndata: %s\n\n", event.ID, payload)
				if err := w.Flush(); err != nil {
					logger.Debug("Stream client gone", zap.Error(err))
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					logger.Debug("Stream client gone", zap.Error(err))
					return
				}
			}
		}
	}))

	return nil
}
