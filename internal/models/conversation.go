package models

import (
	"time"

	"github.com/google/uuid"
)

type ResolutionState string

const (
	StateStarted            ResolutionState = "started"
	StateAwaitingKBFeedback ResolutionState = "awaiting_kb_feedback"
	StateAwaitingAIFeedback ResolutionState = "awaiting_ai_feedback"
	StateResolved           ResolutionState = "resolved"
	StateEscalated          ResolutionState = "escalated"
)

// OpenStates lists the states a conversation can still leave.
var OpenStates = []ResolutionState{StateStarted, StateAwaitingKBFeedback, StateAwaitingAIFeedback}

func (s ResolutionState) IsTerminal() bool {
	return s == StateResolved || s == StateEscalated
}

// SolutionSource identifies where a proposed answer came from.
type SolutionSource string

const (
	SourceKnowledgeBase SolutionSource = "knowledge_base"
	SourceAI            SolutionSource = "ai"
	SourceError         SolutionSource = "error"
)

type Conversation struct {
	ID                 uuid.UUID       `db:"id"`
	UserID             uuid.UUID       `db:"user_id"`
	State              ResolutionState `db:"resolution_state"`
	CurrentAttempt     *SolutionSource `db:"current_attempt"`
	ProposedSolutionID *uuid.UUID      `db:"proposed_solution_id"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}
