package models

import (
	"time"

	"github.com/google/uuid"
)

type SenderType string

const (
	SenderUser SenderType = "user"
	SenderAI   SenderType = "ai"
)

// MessageKind tells real agent answers apart from system notices.
type MessageKind string

const (
	KindQuestion   MessageKind = "question"
	KindAnswer     MessageKind = "answer"
	KindApology    MessageKind = "apology"
	KindDerivation MessageKind = "derivation"
)

// Message is immutable once stored.
type Message struct {
	ID             uuid.UUID   `db:"id"`
	ConversationID uuid.UUID   `db:"conversation_id"`
	SenderID       uuid.UUID   `db:"sender_id"`
	SenderType     SenderType  `db:"sender_type"`
	Kind           MessageKind `db:"kind"`
	Body           string      `db:"body"`
	SentAt         time.Time   `db:"sent_at"`
}

func (m *Message) FromAI() bool {
	return m.SenderType == SenderAI
}

// IsAnswer reports whether the message is a proposed solution.
func (m *Message) IsAnswer() bool {
	return m.FromAI() && m.Kind == KindAnswer
}
