package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"helpdesk-agent/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errNoProblem = errors.New("conversation has no user message")

// LearningService turns confirmed AI answers into knowledge entries.
type LearningService struct {
	knowledge KnowledgeStore
	messages  MessageStore
	logger    *zap.Logger
}

func NewLearningService(knowledge KnowledgeStore, messages MessageStore, logger *zap.Logger) *LearningService {
	return &LearningService{
		knowledge: knowledge,
		messages:  messages,
		logger:    logger.Named("learning"),
	}
}

// Learn stores the conversation's first user message as the problem and
// every agent answer, plus the optional user comment, as the solution.
// Apologies and derivation notices are not answers and are skipped.
func (s *LearningService) Learn(ctx context.Context, conv *models.Conversation, incidentID *uuid.UUID, comment string) (*models.KnowledgeEntry, error) {
	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	problem := firstUserMessage(msgs)
	if problem == "" {
		return nil, errNoProblem
	}

	var answers []string
	for _, m := range msgs {
		if m.IsAnswer() {
			answers = append(answers, m.Body)
		}
	}

	solution := strings.Join(answers, "\n\n")
	if c := strings.TrimSpace(comment); c != "" {
		solution += "\n\n**Comentario del usuario:** " + c
	}

	entry := &models.KnowledgeEntry{
		ID:         uuid.New(),
		IncidentID: incidentID,
		Problem:    problem,
		Solution:   sanitizeUTF8(solution),
		Transcript: answers,
		ResolvedBy: AgentName,
		CreatedAt:  time.Now(),
	}
	if err := s.knowledge.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save knowledge entry: %w", err)
	}

	s.logger.Info("Learned solution from conversation",
		zap.String("conversation_id", conv.ID.String()),
		zap.String("entry_id", entry.ID.String()),
		zap.Int("answers", len(answers)),
	)
	return entry, nil
}

func firstUserMessage(msgs []*models.Message) string {
	for _, m := range msgs {
		if m.SenderType == models.SenderUser {
			return m.Body
		}
	}
	return ""
}
