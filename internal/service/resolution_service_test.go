package service

import (
	"context"
	"errors"
	"testing"

	"helpdesk-agent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolution_KnowledgeBaseMatchOnFirstAttempt(t *testing.T) {
	env := newTestEnv(t)
	entry := env.seedPrinterEntry()

	problem := "no puedo imprimir, la impresora no responde"
	conv := env.ask(t, problem)

	assert.Equal(t, CategoryPrinter, DetectCategory(problem))
	assert.Equal(t, models.StateAwaitingKBFeedback, env.convs.state(conv.ID))
	assert.Zero(t, env.resolver.calls())

	stored, err := env.convs.GetByID(context.Background(), conv.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ProposedSolutionID)
	assert.Equal(t, entry.ID, *stored.ProposedSolutionID)
	require.NotNil(t, stored.CurrentAttempt)
	assert.Equal(t, models.SourceKnowledgeBase, *stored.CurrentAttempt)

	answers := env.msgs.agentMessages(conv.ID)
	require.Len(t, answers, 1)
	assert.Contains(t, answers[0].Body, printerSolution)
	assert.Contains(t, answers[0].Body, "_Esta solución fue proporcionada por: Sistema_")
	assert.Equal(t, env.agent.ID, answers[0].SenderID)

	event := env.publisher.last()
	require.NotNil(t, event)
	assert.Equal(t, answers[0].ID, event.ID)
	assert.Equal(t, conv.ID, event.ConversationID)
	assert.Equal(t, AgentName, event.Sender.Name)
	assert.True(t, event.Sender.IsAI)
	assert.Equal(t, string(models.SourceKnowledgeBase), event.Metadata.SolutionType)
	assert.GreaterOrEqual(t, event.Metadata.Confidence, 0.9)
}

func TestResolution_NoMatchUsesAI(t *testing.T) {
	env := newTestEnv(t)
	env.seedPrinterEntry()

	conv := env.ask(t, "La pantalla parpadea todo el tiempo")

	assert.Equal(t, models.StateAwaitingAIFeedback, env.convs.state(conv.ID))
	require.Equal(t, 1, env.resolver.calls())
	assert.Equal(t, "La pantalla parpadea todo el tiempo", env.resolver.problems[0])

	details := env.resolver.details[0]
	assert.Equal(t, CategoryGeneral, details["categoria"])
	assert.Equal(t, ProblemOther, details["tipo_problema"])
	assert.Contains(t, details["historial"], "Usuario: La pantalla parpadea todo el tiempo")

	event := env.publisher.last()
	require.NotNil(t, event)
	assert.Equal(t, string(models.SourceAI), event.Metadata.SolutionType)
	assert.Equal(t, "deepseek", event.Metadata.Source)
	assert.InDelta(t, ScoreConfidence(env.resolver.answer), event.Metadata.Confidence, 1e-9)
}

func TestResolution_KnowledgeLookupErrorFallsBackToAI(t *testing.T) {
	env := newTestEnv(t)
	env.seedPrinterEntry()
	env.knowledge.failSearch = true

	conv := env.ask(t, "La impresora no imprime")

	assert.Equal(t, models.StateAwaitingAIFeedback, env.convs.state(conv.ID))
	assert.Equal(t, 1, env.resolver.calls())
}

func TestResolution_ForceAISkipsKnowledgeBase(t *testing.T) {
	env := newTestEnv(t)
	env.seedPrinterEntry()
	ctx := context.Background()

	conv, err := env.session.StartSession(ctx, env.employee.ID)
	require.NoError(t, err)

	env.resolution.Process(ctx, ResolutionTask{
		ConversationID: conv.ID,
		UserID:         env.employee.ID,
		Problem:        "No puedo imprimir",
		ForceAI:        true,
	})

	assert.Zero(t, env.knowledge.searches)
	assert.Equal(t, 1, env.resolver.calls())
	assert.Equal(t, models.StateAwaitingAIFeedback, env.convs.state(conv.ID))
}

func TestResolution_FollowUpMessageGoesToAI(t *testing.T) {
	env := newTestEnv(t)
	env.seedPrinterEntry()
	ctx := context.Background()

	conv := env.ask(t, "No puedo imprimir")
	require.Equal(t, models.StateAwaitingKBFeedback, env.convs.state(conv.ID))

	_, err := env.chat.SendMessage(ctx, env.employee.ID, conv.ID, "La impresora es una HP")
	require.NoError(t, err)
	env.runQueued(t)

	assert.Equal(t, 1, env.knowledge.searches)
	assert.Equal(t, 1, env.resolver.calls())
	assert.Equal(t, models.StateAwaitingAIFeedback, env.convs.state(conv.ID))
}

func TestResolution_AIFailureApologisesAndEscalates(t *testing.T) {
	env := newTestEnv(t)
	env.resolver.err = errors.New("timeout")

	conv := env.ask(t, "Mi computadora no enciende")

	assert.Equal(t, models.StateStarted, env.convs.state(conv.ID))

	answers := env.msgs.agentMessages(conv.ID)
	require.Len(t, answers, 1)
	assert.Equal(t, apologyMessage, answers[0].Body)
	assert.Equal(t, models.KindApology, answers[0].Kind)

	event := env.publisher.last()
	require.NotNil(t, event)
	assert.Equal(t, apologyMessage, event.Body)
	assert.Equal(t, string(models.SourceError), event.Metadata.SolutionType)

	incidents := env.incidents.forConversation(conv.ID)
	require.Len(t, incidents, 1)
	assert.Equal(t, models.IncidentEscalated, incidents[0].Status)
	assert.Equal(t, CategoryHardware, incidents[0].Category)
	assert.Equal(t, models.PriorityHigh, incidents[0].Priority)
	require.NotNil(t, incidents[0].AssigneeID)
	assert.Equal(t, env.tech.ID, *incidents[0].AssigneeID)
}

func TestResolution_EmptyAnswerIsAFailure(t *testing.T) {
	env := newTestEnv(t)
	env.resolver.err = ErrEmptyAnswer

	conv := env.ask(t, "Algo raro pasa")

	answers := env.msgs.agentMessages(conv.ID)
	require.Len(t, answers, 1)
	assert.Equal(t, apologyMessage, answers[0].Body)
	assert.Len(t, env.incidents.forConversation(conv.ID), 1)
}

func TestResolution_MessageStoreFailureStillPublishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	conv, err := env.session.StartSession(ctx, env.employee.ID)
	require.NoError(t, err)
	env.msgs.failCreate = true

	env.resolution.Process(ctx, ResolutionTask{ConversationID: conv.ID, UserID: env.employee.ID, Problem: "Sin internet"})

	event := env.publisher.last()
	require.NotNil(t, event)
	assert.Equal(t, apologyMessage, event.Body)
	assert.Equal(t, models.StateStarted, env.convs.state(conv.ID))
	assert.Len(t, env.incidents.forConversation(conv.ID), 1)
}

func TestResolution_SkipsClosedConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	conv, err := env.session.StartSession(ctx, env.employee.ID)
	require.NoError(t, err)
	conv.State = models.StateEscalated
	require.NoError(t, env.convs.UpdateState(ctx, conv))

	env.resolution.Process(ctx, ResolutionTask{ConversationID: conv.ID, Problem: "Sin internet"})

	assert.Zero(t, env.resolver.calls())
	assert.Nil(t, env.publisher.last())
}

func TestResolution_MissingAgentUsesNilSender(t *testing.T) {
	env := newTestEnv(t)
	delete(env.users.users, env.agent.ID)

	conv := env.ask(t, "Algo raro pasa")

	answers := env.msgs.agentMessages(conv.ID)
	require.Len(t, answers, 1)
	assert.Equal(t, uuid.Nil, answers[0].SenderID)
}
