package service

import (
	"context"
	"fmt"
	"time"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	derivationMessage = "He derivado tu caso a un técnico especializado. " +
		"Recibirás una notificación cuando sea asignado."
	unknownProblem = "Problema sin descripción"
)

// FeedbackService applies the user's verdict on the last proposed solution.
type FeedbackService struct {
	conversations ConversationStore
	messages      MessageStore
	incidents     *IncidentService
	learning      *LearningService
	queue         TaskQueue
	directory     Directory
	publisher     realtime.Publisher
	logger        *zap.Logger
}

type FeedbackDeps struct {
	Conversations ConversationStore
	Messages      MessageStore
	Incidents     *IncidentService
	Learning      *LearningService
	Queue         TaskQueue
	Directory     Directory
	Publisher     realtime.Publisher
}

func NewFeedbackService(deps FeedbackDeps, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		conversations: deps.Conversations,
		messages:      deps.Messages,
		incidents:     deps.Incidents,
		learning:      deps.Learning,
		queue:         deps.Queue,
		directory:     deps.Directory,
		publisher:     deps.Publisher,
		logger:        logger.Named("feedback"),
	}
}

// awaitedState is the state a conversation must be in to accept feedback on
// a solution of the given type.
func awaitedState(solutionType models.SolutionSource) (models.ResolutionState, bool) {
	switch solutionType {
	case models.SourceKnowledgeBase:
		return models.StateAwaitingKBFeedback, true
	case models.SourceAI:
		return models.StateAwaitingAIFeedback, true
	}
	return "", false
}

func (s *FeedbackService) Submit(ctx context.Context, userID, conversationID uuid.UUID, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	conv, err := ownedConversation(ctx, s.conversations, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if conv.State.IsTerminal() {
		return nil, ErrConversationClosed
	}

	solutionType := models.SolutionSource(req.SolutionType)
	expected, ok := awaitedState(solutionType)
	if !ok || conv.State != expected {
		return nil, ErrInvalidState
	}

	problem, err := s.originalProblem(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	resolved := req.Resolved != nil && *req.Resolved
	outcome := "rejected"
	if resolved {
		outcome = "resolved"
	}
	feedbackTotal.WithLabelValues(string(solutionType), outcome).Inc()

	log := s.logger.With(
		zap.String("conversation_id", conv.ID.String()),
		zap.String("solution_type", string(solutionType)),
		zap.Bool("resolved", resolved),
	)

	switch {
	case resolved:
		return s.confirm(ctx, conv, solutionType, problem, req.Comment, log)
	case solutionType == models.SourceKnowledgeBase:
		return s.retryWithAI(ctx, conv, problem, log)
	default:
		return s.escalate(ctx, conv, problem, req.Comment, log)
	}
}

func (s *FeedbackService) confirm(ctx context.Context, conv *models.Conversation, solutionType models.SolutionSource, problem, comment string, log *zap.Logger) (*dto.FeedbackResponse, error) {
	if err := s.setState(ctx, conv, models.StateResolved, conv.CurrentAttempt); err != nil {
		return nil, err
	}

	var incidentID *uuid.UUID
	inc, err := s.incidents.MarkResolved(ctx, conv, problem)
	if err != nil {
		log.Warn("Failed to record resolved incident", zap.Error(err))
	} else {
		incidentID = &inc.ID
	}

	message := "¡Problema resuelto con éxito!"
	if solutionType == models.SourceAI {
		message = "¡Excelente! He aprendido de esta solución para ayudar mejor en el futuro."
		if _, err := s.learning.Learn(ctx, conv, incidentID, comment); err != nil {
			learnedEntries.WithLabelValues("failed").Inc()
			log.Warn("Failed to learn from confirmed solution", zap.Error(err))
		} else {
			learnedEntries.WithLabelValues("stored").Inc()
		}
	}

	log.Info("Solution confirmed")
	return &dto.FeedbackResponse{State: string(conv.State), Finished: true, Message: message}, nil
}

// retryWithAI moves the conversation to the AI attempt and queues it with
// the original problem.
func (s *FeedbackService) retryWithAI(ctx context.Context, conv *models.Conversation, problem string, log *zap.Logger) (*dto.FeedbackResponse, error) {
	previous := *conv
	attempt := models.SourceAI
	if err := s.setState(ctx, conv, models.StateAwaitingAIFeedback, &attempt); err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(ResolutionTask{
		ConversationID: conv.ID,
		UserID:         conv.UserID,
		Problem:        problem,
		ForceAI:        true,
	}); err != nil {
		if rbErr := s.conversations.UpdateState(ctx, &previous); rbErr != nil {
			log.Error("Failed to restore conversation state", zap.Error(rbErr))
		}
		return nil, err
	}

	log.Info("Knowledge base answer rejected, retrying with AI")
	return &dto.FeedbackResponse{
		State:    string(conv.State),
		Finished: false,
		Message:  "Entendido. Déjame intentar con otra solución...",
	}, nil
}

func (s *FeedbackService) escalate(ctx context.Context, conv *models.Conversation, problem, comment string, log *zap.Logger) (*dto.FeedbackResponse, error) {
	if _, err := s.incidents.Escalate(ctx, conv, problem, comment, EscalationRejected); err != nil {
		return nil, err
	}

	if err := s.setState(ctx, conv, models.StateEscalated, conv.CurrentAttempt); err != nil {
		return nil, err
	}

	senderID := agentSenderID(ctx, s.directory, s.logger)
	ans := answer{body: derivationMessage, source: models.SourceError, origin: sourceSystem}
	msg, err := saveAgentMessage(ctx, s.messages, conv.ID, senderID, models.KindDerivation, derivationMessage)
	if err != nil {
		log.Warn("Failed to save derivation message", zap.Error(err))
	} else {
		publishAgentMessage(ctx, s.publisher, msg, ans, s.logger)
	}

	log.Info("AI answer rejected, conversation escalated")
	return &dto.FeedbackResponse{
		State:    string(conv.State),
		Finished: true,
		Message:  "He derivado tu caso a un técnico especializado que se pondrá en contacto contigo pronto.",
	}, nil
}

func (s *FeedbackService) setState(ctx context.Context, conv *models.Conversation, state models.ResolutionState, attempt *models.SolutionSource) error {
	conv.State = state
	conv.CurrentAttempt = attempt
	conv.UpdatedAt = time.Now()
	if state == models.StateAwaitingAIFeedback {
		conv.ProposedSolutionID = nil
	}
	if err := s.conversations.UpdateState(ctx, conv); err != nil {
		return fmt.Errorf("failed to update conversation state: %w", err)
	}
	return nil
}

func (s *FeedbackService) originalProblem(ctx context.Context, conversationID uuid.UUID) (string, error) {
	msgs, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return "", fmt.Errorf("failed to load transcript: %w", err)
	}
	if p := firstUserMessage(msgs); p != "" {
		return p, nil
	}
	return unknownProblem, nil
}
