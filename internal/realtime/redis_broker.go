package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBroker fans events out through Redis pub/sub so every API instance
// can serve the stream of any conversation.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{
		client: client,
		logger: logger.Named("realtime"),
	}
}

func (b *RedisBroker) Publish(ctx context.Context, conversationID uuid.UUID, event *MessageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := b.client.Publish(ctx, Channel(conversationID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, conversationID uuid.UUID) (<-chan *MessageEvent, func(), error) {
	pubsub := b.client.Subscribe(ctx, Channel(conversationID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *MessageEvent, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event MessageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("Skipping malformed event",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
				continue
			}
			select {
			case out <- &event:
			default:
				b.logger.Warn("Dropping event for slow subscriber", zap.String("channel", msg.Channel))
			}
		}
	}()

	cancel := func() {
		_ = pubsub.Close()
	}
	return out, cancel, nil
}
