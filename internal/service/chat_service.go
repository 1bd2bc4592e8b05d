package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk-agent/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatService struct {
	conversations ConversationStore
	messages      MessageStore
	queue         TaskQueue
	logger        *zap.Logger
}

func NewChatService(conversations ConversationStore, messages MessageStore, queue TaskQueue, logger *zap.Logger) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		queue:         queue,
		logger:        logger.Named("chat"),
	}
}

// SendMessage stores the user's message and queues its resolution. It
// returns as soon as the task is queued. When the queue refuses the task the
// stored message is removed again so a retry does not duplicate it.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, body string) (*models.Message, error) {
	conv, err := ownedConversation(ctx, s.conversations, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if conv.State.IsTerminal() {
		return nil, ErrConversationClosed
	}

	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       userID,
		SenderType:     models.SenderUser,
		Kind:           models.KindQuestion,
		Body:           sanitizeUTF8(strings.TrimSpace(body)),
		SentAt:         time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if err := s.queue.Enqueue(ResolutionTask{
		ConversationID: conv.ID,
		UserID:         userID,
		Problem:        msg.Body,
	}); err != nil {
		s.logger.Error("Failed to queue resolution",
			zap.String("conversation_id", conv.ID.String()),
			zap.Error(err),
		)
		if delErr := s.messages.Delete(ctx, msg.ID); delErr != nil {
			s.logger.Error("Failed to remove unqueued message",
				zap.String("message_id", msg.ID.String()),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Message queued for resolution",
		zap.String("conversation_id", conv.ID.String()),
		zap.String("message_id", msg.ID.String()),
	)
	return msg, nil
}

// ListMessages returns the transcript oldest first.
func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) (*models.Conversation, []*models.Message, error) {
	conv, err := ownedConversation(ctx, s.conversations, conversationID, userID)
	if err != nil {
		return nil, nil, err
	}

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return conv, msgs, nil
}
