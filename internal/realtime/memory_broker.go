package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// MemoryBroker delivers events to subscribers of the same process. Used when
// Redis is not configured.
type MemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan *MessageEvent]struct{}
	logger      *zap.Logger
}

func NewMemoryBroker(logger *zap.Logger) *MemoryBroker {
	return &MemoryBroker{
		subscribers: make(map[uuid.UUID]map[chan *MessageEvent]struct{}),
		logger:      logger.Named("realtime"),
	}
}

// Publish never blocks: slow subscribers lose the event.
func (b *MemoryBroker) Publish(_ context.Context, conversationID uuid.UUID, event *MessageEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[conversationID] {
		select {
		case ch <- event:
		default:
			b.logger.Warn("Dropping event for slow subscriber",
				zap.String("conversation_id", conversationID.String()),
				zap.String("message_id", event.ID.String()),
			)
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, conversationID uuid.UUID) (<-chan *MessageEvent, func(), error) {
	ch := make(chan *MessageEvent, subscriberBuffer)

	b.mu.Lock()
	if b.subscribers[conversationID] == nil {
		b.subscribers[conversationID] = make(map[chan *MessageEvent]struct{})
	}
	b.subscribers[conversationID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers[conversationID], ch)
			if len(b.subscribers[conversationID]) == 0 {
				delete(b.subscribers, conversationID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
