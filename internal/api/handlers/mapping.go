package handlers

import (
	"time"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/service"

	"github.com/google/uuid"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toMessageResponse(m *models.Message, username string) dto.MessageResponse {
	sender := dto.SenderResponse{ID: m.SenderID.String(), Name: username}
	if m.FromAI() {
		sender.Name = service.AgentName
		sender.IsAI = true
	}
	return dto.MessageResponse{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		Body:           m.Body,
		SentAt:         formatTime(m.SentAt),
		Sender:         sender,
	}
}

func toIncidentResponse(inc *models.Incident) dto.IncidentResponse {
	return dto.IncidentResponse{
		ID:             inc.ID.String(),
		Description:    inc.Description,
		Category:       inc.Category,
		Priority:       string(inc.Priority),
		Status:         string(inc.Status),
		ConversationID: optionalID(inc.ConversationID),
		ReporterID:     optionalID(inc.ReporterID),
		AssigneeID:     optionalID(inc.AssigneeID),
		CreatedAt:      formatTime(inc.CreatedAt),
		UpdatedAt:      formatTime(inc.UpdatedAt),
	}
}

func toIncidentDetailResponse(d *models.IncidentDetail) dto.IncidentDetailResponse {
	resp := dto.IncidentDetailResponse{
		ID:           d.ID.String(),
		IncidentID:   d.IncidentID.String(),
		TechnicianID: optionalID(d.TechnicianID),
		Status:       string(d.Status),
		Comment:      d.Comment,
		OpenedAt:     formatTime(d.OpenedAt),
	}
	if d.ClosedAt != nil {
		closed := formatTime(*d.ClosedAt)
		resp.ClosedAt = &closed
	}
	return resp
}

func toKnowledgeResponse(e *models.KnowledgeEntry) dto.KnowledgeEntryResponse {
	return dto.KnowledgeEntryResponse{
		ID:         e.ID.String(),
		IncidentID: optionalID(e.IncidentID),
		Problem:    e.Problem,
		Solution:   e.Solution,
		Transcript: e.Transcript,
		ResolvedBy: e.ResolvedBy,
		CreatedAt:  formatTime(e.CreatedAt),
	}
}
