package service

import (
	"context"
	"testing"
	"time"

	"helpdesk-agent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func addMessage(t *testing.T, msgs *mockMessageStore, conversationID uuid.UUID) func(models.SenderType, models.MessageKind, string) {
	return func(sender models.SenderType, kind models.MessageKind, body string) {
		require.NoError(t, msgs.Create(context.Background(), &models.Message{
			ID: uuid.New(), ConversationID: conversationID, SenderType: sender, Kind: kind, Body: body, SentAt: time.Now(),
		}))
	}
}

func TestLearn_JoinsAgentAnswers(t *testing.T) {
	msgs := &mockMessageStore{}
	knowledge := &mockKnowledgeStore{}
	svc := NewLearningService(knowledge, msgs, zap.NewNop())

	conv := &models.Conversation{ID: uuid.New(), UserID: uuid.New()}
	add := addMessage(t, msgs, conv.ID)
	add(models.SenderUser, models.KindQuestion, "Outlook no abre")
	add(models.SenderAI, models.KindAnswer, "primera respuesta")
	add(models.SenderUser, models.KindQuestion, "sigue igual")
	add(models.SenderAI, models.KindAnswer, "segunda respuesta")

	entry, err := svc.Learn(context.Background(), conv, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "Outlook no abre", entry.Problem)
	assert.Equal(t, "primera respuesta\n\nsegunda respuesta", entry.Solution)
	assert.Equal(t, []string{"primera respuesta", "segunda respuesta"}, entry.Transcript)
	assert.Nil(t, entry.IncidentID)
	assert.Equal(t, 1, knowledge.count())
}

func TestLearn_EmptyConversation(t *testing.T) {
	knowledge := &mockKnowledgeStore{}
	svc := NewLearningService(knowledge, &mockMessageStore{}, zap.NewNop())

	_, err := svc.Learn(context.Background(), &models.Conversation{ID: uuid.New()}, nil, "gracias")
	assert.Error(t, err)
	assert.Zero(t, knowledge.count())
}

func TestLearn_SkipsApologyAndDerivation(t *testing.T) {
	msgs := &mockMessageStore{}
	knowledge := &mockKnowledgeStore{}
	svc := NewLearningService(knowledge, msgs, zap.NewNop())

	conv := &models.Conversation{ID: uuid.New(), UserID: uuid.New()}
	add := addMessage(t, msgs, conv.ID)
	add(models.SenderUser, models.KindQuestion, "La VPN se desconecta")
	add(models.SenderAI, models.KindApology, apologyMessage)
	add(models.SenderAI, models.KindAnswer, "Reinstala el cliente VPN")
	add(models.SenderAI, models.KindDerivation, derivationMessage)

	entry, err := svc.Learn(context.Background(), conv, nil, "listo")
	require.NoError(t, err)

	assert.Equal(t, []string{"Reinstala el cliente VPN"}, entry.Transcript)
	assert.Equal(t, "Reinstala el cliente VPN\n\n**Comentario del usuario:** listo", entry.Solution)
	assert.NotContains(t, entry.Solution, apologyMessage)
}
