package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeEntry is a known problem with the solution that fixed it.
// Transcript keeps the individual answers when the solution was learned
// from a conversation; Solution is always the flat text.
type KnowledgeEntry struct {
	ID         uuid.UUID  `db:"id"`
	IncidentID *uuid.UUID `db:"incident_id"`
	Problem    string     `db:"problem_description"`
	Solution   string     `db:"solution"`
	Transcript []string   `db:"transcript"`
	ResolvedBy string     `db:"resolved_by"`
	CreatedAt  time.Time  `db:"created_at"`
}
