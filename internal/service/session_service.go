package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionService struct {
	conversations ConversationStore
	logger        *zap.Logger
}

func NewSessionService(conversations ConversationStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		conversations: conversations,
		logger:        logger.Named("session"),
	}
}

// StartSession closes every open conversation of the user, marking them
// resolved, and opens a fresh one. Two concurrent calls for the same user
// may both leave a conversation open.
func (s *SessionService) StartSession(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	closed, err := s.conversations.CloseOpenByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to close previous sessions: %w", err)
	}

	now := time.Now()
	conv := &models.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		State:     models.StateStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	s.logger.Info("Chat session started",
		zap.String("conversation_id", conv.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("closed_sessions", closed),
	)
	return conv, nil
}

// Authorize returns the conversation when userID owns it.
func (s *SessionService) Authorize(ctx context.Context, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	return ownedConversation(ctx, s.conversations, conversationID, userID)
}

func ownedConversation(ctx context.Context, store ConversationStore, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	conv, err := store.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, ErrForbidden
	}
	return conv, nil
}
