package models

import (
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentPending    IncidentStatus = "pending"
	IncidentEscalated  IncidentStatus = "escalated"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentClosed     IncidentStatus = "closed"
	IncidentCancelled  IncidentStatus = "cancelled"
)

// IsTerminal reports whether priority and category are frozen.
func (s IncidentStatus) IsTerminal() bool {
	return s == IncidentResolved || s == IncidentClosed
}

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentPending, IncidentEscalated, IncidentInProgress, IncidentResolved, IncidentClosed, IncidentCancelled:
		return true
	}
	return false
}

type IncidentPriority string

const (
	PriorityLow    IncidentPriority = "low"
	PriorityMedium IncidentPriority = "medium"
	PriorityHigh   IncidentPriority = "high"
)

type Incident struct {
	ID             uuid.UUID        `db:"id"`
	Description    string           `db:"description"`
	Category       string           `db:"category"`
	Priority       IncidentPriority `db:"priority"`
	Status         IncidentStatus   `db:"status"`
	ConversationID *uuid.UUID       `db:"conversation_id"`
	ReporterID     *uuid.UUID       `db:"reporter_id"`
	AssigneeID     *uuid.UUID       `db:"assignee_id"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// IncidentDetail is an append-only attention entry.
type IncidentDetail struct {
	ID           uuid.UUID      `db:"id"`
	IncidentID   uuid.UUID      `db:"incident_id"`
	TechnicianID *uuid.UUID     `db:"technician_id"`
	Status       IncidentStatus `db:"status"`
	Comment      string         `db:"comment"`
	OpenedAt     time.Time      `db:"opened_at"`
	ClosedAt     *time.Time     `db:"closed_at"`
}
