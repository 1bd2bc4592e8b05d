// Package realtime fans chat messages out to live listeners of a conversation.
package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Sender struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	IsAI bool      `json:"is_ai"`
}

type SolutionMetadata struct {
	SolutionType string  `json:"solution_type"`
	Source       string  `json:"source"`
	Confidence   float64 `json:"confidence"`
}

// MessageEvent is published once per message produced by the agent.
type MessageEvent struct {
	ID             uuid.UUID        `json:"id"`
	ConversationID uuid.UUID        `json:"conversation_id"`
	Body           string           `json:"body"`
	SentAt         time.Time        `json:"sent_at"`
	Sender         Sender           `json:"sender"`
	Metadata       SolutionMetadata `json:"metadata"`
}

type Publisher interface {
	Publish(ctx context.Context, conversationID uuid.UUID, event *MessageEvent) error
}

// Subscriber hands out a stream of events for one conversation. The returned
// cancel func must be called to release the subscription.
type Subscriber interface {
	Subscribe(ctx context.Context, conversationID uuid.UUID) (<-chan *MessageEvent, func(), error)
}

type Broker interface {
	Publisher
	Subscriber
}

// Channel is the pub/sub channel name of a conversation.
func Channel(conversationID uuid.UUID) string {
	return fmt.Sprintf("chat.%s", conversationID)
}
