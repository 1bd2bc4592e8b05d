package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AgentName is the display name of the synthetic agent sender.
	AgentName = "Agente IA"

	apologyMessage = "Lo siento, ha ocurrido un error procesando tu mensaje. " +
		"Un técnico se pondrá en contacto contigo pronto."

	sourceKnowledgeBase = "base_conocimientos"
	sourceSystem        = "sistema"
)

// ResolutionService produces the agent's answer to a user message: a
// knowledge base match on the first attempt, otherwise an AI answer. Any
// failure ends in an apology and an escalated incident.
type ResolutionService struct {
	conversations ConversationStore
	messages      MessageStore
	knowledge     *KnowledgeService
	resolver      AIResolver
	incidents     *IncidentService
	directory     Directory
	publisher     realtime.Publisher
	historyLimit  int
	logger        *zap.Logger
}

type ResolutionDeps struct {
	Conversations ConversationStore
	Messages      MessageStore
	Knowledge     *KnowledgeService
	Resolver      AIResolver
	Incidents     *IncidentService
	Directory     Directory
	Publisher     realtime.Publisher
	HistoryLimit  int
}

func NewResolutionService(deps ResolutionDeps, logger *zap.Logger) *ResolutionService {
	historyLimit := deps.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &ResolutionService{
		conversations: deps.Conversations,
		messages:      deps.Messages,
		knowledge:     deps.Knowledge,
		resolver:      deps.Resolver,
		incidents:     deps.Incidents,
		directory:     deps.Directory,
		publisher:     deps.Publisher,
		historyLimit:  historyLimit,
		logger:        logger.Named("resolution"),
	}
}

type answer struct {
	body       string
	source     models.SolutionSource
	origin     string
	confidence float64
	entryID    *uuid.UUID
}

// Process runs one resolution task to completion. Errors never escape: the
// user always gets a message in the conversation.
func (s *ResolutionService) Process(ctx context.Context, task ResolutionTask) {
	log := s.logger.With(
		zap.String("conversation_id", task.ConversationID.String()),
		zap.Bool("force_ai", task.ForceAI),
	)

	conv, err := s.conversations.GetByID(ctx, task.ConversationID)
	if err != nil {
		log.Error("Failed to load conversation", zap.Error(err))
		return
	}
	if conv.State.IsTerminal() {
		log.Info("Skipping task for closed conversation", zap.String("state", string(conv.State)))
		return
	}

	senderID := s.agentID(ctx)

	if !task.ForceAI && conv.State == models.StateStarted {
		if entry := s.lookupKnowledge(ctx, task.Problem, log); entry != nil {
			ans := answer{
				body:       FormatAnswer(entry),
				source:     models.SourceKnowledgeBase,
				origin:     sourceKnowledgeBase,
				confidence: knowledgeBaseConfidence,
				entryID:    &entry.ID,
			}
			if err := s.respond(ctx, conv, senderID, ans, models.StateAwaitingKBFeedback); err != nil {
				s.fail(ctx, conv, task, senderID, err)
			}
			return
		}
	}

	ans, err := s.askAI(ctx, conv, task.Problem)
	if err != nil {
		s.fail(ctx, conv, task, senderID, err)
		return
	}
	if err := s.respond(ctx, conv, senderID, ans, models.StateAwaitingAIFeedback); err != nil {
		s.fail(ctx, conv, task, senderID, err)
	}
}

func (s *ResolutionService) lookupKnowledge(ctx context.Context, problem string, log *zap.Logger) *models.KnowledgeEntry {
	entries, err := s.knowledge.Search(ctx, problem)
	if err != nil {
		log.Warn("Knowledge lookup failed, falling back to AI", zap.Error(err))
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	return entries[0]
}

func (s *ResolutionService) askAI(ctx context.Context, conv *models.Conversation, problem string) (answer, error) {
	category := DetectCategory(problem)
	details := map[string]string{
		"categoria":     category,
		"tipo_problema": ClassifyProblemType(problem),
	}

	history, err := s.messages.ListRecent(ctx, conv.ID, s.historyLimit)
	if err != nil {
		s.logger.Warn("Failed to load history, asking without it",
			zap.String("conversation_id", conv.ID.String()),
			zap.Error(err),
		)
	} else if h := formatHistory(history); h != "" {
		details["historial"] = h
	}

	start := time.Now()
	text, err := s.resolver.Resolve(ctx, problem, details)
	aiLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return answer{}, fmt.Errorf("ai resolver: %w", err)
	}

	return answer{
		body:       text,
		source:     models.SourceAI,
		origin:     s.resolver.Name(),
		confidence: ScoreConfidence(text),
	}, nil
}

func formatHistory(msgs []*models.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		who := "Usuario"
		if m.FromAI() {
			who = AgentName
		}
		lines = append(lines, who+": "+strings.ReplaceAll(m.Body, "\n", " "))
	}
	return strings.Join(lines, " | ")
}

// respond stores the answer, moves the conversation to next and publishes.
func (s *ResolutionService) respond(ctx context.Context, conv *models.Conversation, senderID uuid.UUID, ans answer, next models.ResolutionState) error {
	msg, err := s.saveAgentMessage(ctx, conv.ID, senderID, models.KindAnswer, ans.body)
	if err != nil {
		return err
	}

	source := ans.source
	conv.State = next
	conv.CurrentAttempt = &source
	conv.ProposedSolutionID = ans.entryID
	conv.UpdatedAt = time.Now()
	if err := s.conversations.UpdateState(ctx, conv); err != nil {
		return fmt.Errorf("failed to update conversation state: %w", err)
	}

	resolutionAttempts.WithLabelValues(string(ans.source)).Inc()
	s.publish(ctx, msg, ans)

	s.logger.Info("Solution proposed",
		zap.String("conversation_id", conv.ID.String()),
		zap.String("source", string(ans.source)),
		zap.Float64("confidence", ans.confidence),
		zap.String("state", string(next)),
	)
	return nil
}

// fail appends the apology, publishes it and escalates. A conversation
// awaiting AI feedback is moved to escalated along with its incident; any
// other state is left untouched.
func (s *ResolutionService) fail(ctx context.Context, conv *models.Conversation, task ResolutionTask, senderID uuid.UUID, cause error) {
	s.logger.Error("Resolution attempt failed",
		zap.String("conversation_id", conv.ID.String()),
		zap.Error(cause),
	)
	resolutionAttempts.WithLabelValues(string(models.SourceError)).Inc()

	ans := answer{body: apologyMessage, source: models.SourceError, origin: sourceSystem}
	msg, err := s.saveAgentMessage(ctx, conv.ID, senderID, models.KindApology, ans.body)
	if err != nil {
		s.logger.Error("Failed to save apology", zap.String("conversation_id", conv.ID.String()), zap.Error(err))
		msg = &models.Message{ID: uuid.New(), ConversationID: conv.ID, SenderID: senderID, SenderType: models.SenderAI, Kind: models.KindApology, Body: ans.body, SentAt: time.Now()}
	}
	s.publish(ctx, msg, ans)

	if conv.State == models.StateAwaitingAIFeedback {
		source := models.SourceError
		conv.State = models.StateEscalated
		conv.CurrentAttempt = &source
		conv.ProposedSolutionID = nil
		conv.UpdatedAt = time.Now()
		if err := s.conversations.UpdateState(ctx, conv); err != nil {
			s.logger.Error("Failed to close conversation after failed retry", zap.String("conversation_id", conv.ID.String()), zap.Error(err))
		}
	}

	if _, err := s.incidents.Escalate(ctx, conv, task.Problem, "", EscalationFailure); err != nil {
		s.logger.Error("Failed to escalate after failure", zap.String("conversation_id", conv.ID.String()), zap.Error(err))
	}
}

func (s *ResolutionService) saveAgentMessage(ctx context.Context, conversationID, senderID uuid.UUID, kind models.MessageKind, body string) (*models.Message, error) {
	return saveAgentMessage(ctx, s.messages, conversationID, senderID, kind, body)
}

func saveAgentMessage(ctx context.Context, messages MessageStore, conversationID, senderID uuid.UUID, kind models.MessageKind, body string) (*models.Message, error) {
	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderType:     models.SenderAI,
		Kind:           kind,
		Body:           sanitizeUTF8(body),
		SentAt:         time.Now(),
	}
	if err := messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save agent message: %w", err)
	}
	return msg, nil
}

func (s *ResolutionService) publish(ctx context.Context, msg *models.Message, ans answer) {
	publishAgentMessage(ctx, s.publisher, msg, ans, s.logger)
}

func publishAgentMessage(ctx context.Context, publisher realtime.Publisher, msg *models.Message, ans answer, logger *zap.Logger) {
	event := &realtime.MessageEvent{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Body:           msg.Body,
		SentAt:         msg.SentAt,
		Sender: realtime.Sender{
			ID:   msg.SenderID,
			Name: AgentName,
			IsAI: true,
		},
		Metadata: realtime.SolutionMetadata{
			SolutionType: string(ans.source),
			Source:       ans.origin,
			Confidence:   ans.confidence,
		},
	}
	if err := publisher.Publish(ctx, msg.ConversationID, event); err != nil {
		logger.Warn("Failed to publish message event",
			zap.String("conversation_id", msg.ConversationID.String()),
			zap.Error(err),
		)
	}
}

// agentID returns the id of the AI agent user, or uuid.Nil when none is
// provisioned.
func (s *ResolutionService) agentID(ctx context.Context) uuid.UUID {
	return agentSenderID(ctx, s.directory, s.logger)
}

func agentSenderID(ctx context.Context, directory Directory, logger *zap.Logger) uuid.UUID {
	agent, err := directory.FindByRole(ctx, models.RoleAIAgent)
	if err != nil {
		logger.Warn("AI agent lookup failed", zap.Error(err))
		return uuid.Nil
	}
	if agent == nil {
		logger.Warn("No AI agent user provisioned")
		return uuid.Nil
	}
	return agent.ID
}
