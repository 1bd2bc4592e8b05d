//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/pkg/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const migrationsPath = "../../migrations"

func createUser(t *testing.T, users *UserRepository, role models.Role) *models.User {
	t.Helper()
	now := time.Now()
	u := &models.User{
		ID:        uuid.New(),
		Username:  "user-" + uuid.NewString()[:8],
		Email:     uuid.NewString() + "@example.com",
		Password:  "hash",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestConversationLifecycle(t *testing.T) {
	db := testhelpers.GetTestDB(t, migrationsPath)
	ctx := context.Background()
	users := NewUserRepository(db.Pool, zap.NewNop())
	conversations := NewConversationRepository(db.Pool, zap.NewNop())
	messages := NewMessageRepository(db.Pool, zap.NewNop())

	user := createUser(t, users, models.RoleEmployee)
	now := time.Now()
	conv := &models.Conversation{ID: uuid.New(), UserID: user.ID, State: models.StateStarted, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, conversations.Create(ctx, conv))

	for i, body := range []string{"primero", "segundo", "tercero"} {
		require.NoError(t, messages.Create(ctx, &models.Message{
			ID:             uuid.New(),
			ConversationID: conv.ID,
			SenderID:       user.ID,
			SenderType:     models.SenderUser,
			Kind:           models.KindQuestion,
			Body:           body,
			SentAt:         now.Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := messages.ListRecent(ctx, conv.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "segundo", recent[0].Body)
	assert.Equal(t, "tercero", recent[1].Body)

	tick := now.Add(time.Minute)
	var sameTick []uuid.UUID
	for _, body := range []string{"a", "b", "c"} {
		msg := &models.Message{
			ID:             uuid.New(),
			ConversationID: conv.ID,
			SenderID:       user.ID,
			SenderType:     models.SenderAI,
			Kind:           models.KindAnswer,
			Body:           body,
			SentAt:         tick,
		}
		require.NoError(t, messages.Create(ctx, msg))
		sameTick = append(sameTick, msg.ID)
	}
	transcript, err := messages.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 6)
	assert.Equal(t, []string{"a", "b", "c"}, []string{transcript[3].Body, transcript[4].Body, transcript[5].Body})
	assert.Equal(t, models.KindAnswer, transcript[5].Kind)

	require.NoError(t, messages.Delete(ctx, sameTick[2]))
	assert.ErrorIs(t, messages.Delete(ctx, sameTick[2]), ErrNotFound)
	transcript, err = messages.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, transcript, 5)

	attempt := models.SourceAI
	conv.State = models.StateAwaitingAIFeedback
	conv.CurrentAttempt = &attempt
	require.NoError(t, conversations.UpdateState(ctx, conv))

	loaded, err := conversations.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingAIFeedback, loaded.State)
	require.NotNil(t, loaded.CurrentAttempt)
	assert.Equal(t, models.SourceAI, *loaded.CurrentAttempt)

	closed, err := conversations.CloseOpenByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), closed)

	loaded, err = conversations.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateResolved, loaded.State)

	_, err = conversations.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKnowledgeSearch(t *testing.T) {
	db := testhelpers.GetTestDB(t, migrationsPath)
	ctx := context.Background()
	knowledge := NewKnowledgeRepository(db.Pool, zap.NewNop())

	entry := &models.KnowledgeEntry{
		ID:         uuid.New(),
		Problem:    "La IMPRESORA del tercer piso no responde",
		Solution:   "Reinicie la cola de impresión",
		Transcript: []string{"Reinicie la cola de impresión"},
		ResolvedBy: "Sistema",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, knowledge.Create(ctx, entry))
	require.NoError(t, knowledge.Upsert(ctx, entry))

	found, err := knowledge.SearchByKeywords(ctx, []string{"impresora"}, 3)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	ids := make([]uuid.UUID, 0, len(found))
	for _, e := range found {
		ids = append(ids, e.ID)
	}
	assert.Contains(t, ids, entry.ID)

	got, err := knowledge.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Transcript, got.Transcript)

	require.NoError(t, knowledge.Delete(ctx, entry.ID))
	assert.ErrorIs(t, knowledge.Delete(ctx, entry.ID), ErrNotFound)
}

func TestIncidentDetails(t *testing.T) {
	db := testhelpers.GetTestDB(t, migrationsPath)
	ctx := context.Background()
	users := NewUserRepository(db.Pool, zap.NewNop())
	incidents := NewIncidentRepository(db.Pool, zap.NewNop())

	tech := createUser(t, users, models.RoleTechnician)
	now := time.Now()
	inc := &models.Incident{
		ID:          uuid.New(),
		Description: "Sin red",
		Category:    "network",
		Priority:    models.PriorityHigh,
		Status:      models.IncidentEscalated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, incidents.Create(ctx, inc))

	inc.AssigneeID = &tech.ID
	inc.Status = models.IncidentInProgress
	require.NoError(t, incidents.Update(ctx, inc))

	require.NoError(t, incidents.CreateDetail(ctx, &models.IncidentDetail{
		ID:           uuid.New(),
		IncidentID:   inc.ID,
		TechnicianID: &tech.ID,
		Status:       models.IncidentInProgress,
		Comment:      "Revisando switch",
		OpenedAt:     now,
	}))

	details, err := incidents.ListDetails(ctx, inc.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Revisando switch", details[0].Comment)

	status := models.IncidentInProgress
	list, err := incidents.List(ctx, IncidentFilter{Status: &status, Limit: 100})
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	found, err := users.FindByRole(ctx, models.RoleTechnician)
	require.NoError(t, err)
	require.NotNil(t, found)
}
