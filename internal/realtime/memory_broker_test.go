package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryBroker_DeliversToConversationSubscribers(t *testing.T) {
	broker := NewMemoryBroker(zap.NewNop())
	ctx := context.Background()
	convID := uuid.New()
	otherID := uuid.New()

	events, cancel, err := broker.Subscribe(ctx, convID)
	require.NoError(t, err)
	defer cancel()

	other, cancelOther, err := broker.Subscribe(ctx, otherID)
	require.NoError(t, err)
	defer cancelOther()

	event := &MessageEvent{ID: uuid.New(), ConversationID: convID, Body: "hola", SentAt: time.Now()}
	require.NoError(t, broker.Publish(ctx, convID, event))

	select {
	case got := <-events:
		assert.Equal(t, event.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case <-other:
		t.Fatal("event leaked to another conversation")
	default:
	}
}

func TestMemoryBroker_CancelClosesStream(t *testing.T) {
	broker := NewMemoryBroker(zap.NewNop())
	convID := uuid.New()

	events, cancel, err := broker.Subscribe(context.Background(), convID)
	require.NoError(t, err)

	cancel()
	cancel()

	_, open := <-events
	assert.False(t, open)
	require.NoError(t, broker.Publish(context.Background(), convID, &MessageEvent{ID: uuid.New()}))
}

func TestMemoryBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	broker := NewMemoryBroker(zap.NewNop())
	convID := uuid.New()

	_, cancel, err := broker.Subscribe(context.Background(), convID)
	require.NoError(t, err)
	defer cancel()

	for i := 0; i < subscriberBuffer*2; i++ {
		require.NoError(t, broker.Publish(context.Background(), convID, &MessageEvent{ID: uuid.New()}))
	}
}

func TestChannel(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001")
	assert.Equal(t, "chat.6f1c2a4e-0000-4000-8000-000000000001", Channel(id))
}
