package service

import (
	"context"
	"testing"
	"time"

	"helpdesk-agent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const printerSolution = "1. Verifica que la impresora esté encendida.\n2. Revisa el cable USB.\n3. Reinicia la cola de impresión."

type testEnv struct {
	users     *mockUserStore
	convs     *mockConversationStore
	msgs      *mockMessageStore
	knowledge *mockKnowledgeStore
	incidents *mockIncidentStore
	resolver  *mockResolver
	queue     *mockQueue
	publisher *mockPublisher

	agent    *models.User
	tech     *models.User
	employee *models.User

	incidentSvc *IncidentService
	resolution  *ResolutionService
	feedback    *FeedbackService
	chat        *ChatService
	session     *SessionService
}

func newUser(role models.Role, name string) *models.User {
	return &models.User{ID: uuid.New(), Username: name, Email: name + "@support.local", Role: role, CreatedAt: time.Now()}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	e := &testEnv{
		convs:     newMockConversationStore(),
		msgs:      &mockMessageStore{},
		knowledge: &mockKnowledgeStore{},
		incidents: newMockIncidentStore(),
		resolver:  &mockResolver{answer: "1. Reinicia el equipo.\n2. Comprueba los cables."},
		queue:     &mockQueue{},
		publisher: &mockPublisher{},
		agent:     newUser(models.RoleAIAgent, "ia"),
		tech:      newUser(models.RoleTechnician, "tecnico"),
		employee:  newUser(models.RoleEmployee, "empleado"),
	}
	e.users = newMockUserStore(e.agent, e.tech, e.employee)

	knowledgeSvc := NewKnowledgeService(e.knowledge, 3, logger)
	e.incidentSvc = NewIncidentService(e.incidents, e.users, logger)
	learning := NewLearningService(e.knowledge, e.msgs, logger)

	e.resolution = NewResolutionService(ResolutionDeps{
		Conversations: e.convs,
		Messages:      e.msgs,
		Knowledge:     knowledgeSvc,
		Resolver:      e.resolver,
		Incidents:     e.incidentSvc,
		Directory:     e.users,
		Publisher:     e.publisher,
		HistoryLimit:  10,
	}, logger)
	e.feedback = NewFeedbackService(FeedbackDeps{
		Conversations: e.convs,
		Messages:      e.msgs,
		Incidents:     e.incidentSvc,
		Learning:      learning,
		Queue:         e.queue,
		Directory:     e.users,
		Publisher:     e.publisher,
	}, logger)
	e.chat = NewChatService(e.convs, e.msgs, e.queue, logger)
	e.session = NewSessionService(e.convs, logger)
	return e
}

func (e *testEnv) seedPrinterEntry() *models.KnowledgeEntry {
	entry := &models.KnowledgeEntry{
		ID:         uuid.New(),
		Problem:    "No puedo imprimir, la impresora no responde",
		Solution:   printerSolution,
		ResolvedBy: "Sistema",
		CreatedAt:  time.Now(),
	}
	e.knowledge.entries = append(e.knowledge.entries, entry)
	return entry
}

// ask opens a session for the employee, sends problem and runs the queued
// resolution task.
func (e *testEnv) ask(t *testing.T, problem string) *models.Conversation {
	t.Helper()
	ctx := context.Background()

	conv, err := e.session.StartSession(ctx, e.employee.ID)
	require.NoError(t, err)

	_, err = e.chat.SendMessage(ctx, e.employee.ID, conv.ID, problem)
	require.NoError(t, err)

	e.runQueued(t)
	return conv
}

// runQueued processes every queued task in order.
func (e *testEnv) runQueued(t *testing.T) {
	t.Helper()
	e.queue.mu.Lock()
	tasks := e.queue.tasks
	e.queue.tasks = nil
	e.queue.mu.Unlock()

	for _, task := range tasks {
		e.resolution.Process(context.Background(), task)
	}
}

func boolPtr(b bool) *bool { return &b }
