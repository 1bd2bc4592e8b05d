package dto

type CreateIncidentRequest struct {
	Description string `json:"description" validate:"required,notblank,max=2000"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateIncidentRequest changes only the fields that are present.
type UpdateIncidentRequest struct {
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=50"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeID  *string `json:"assignee_id" validate:"omitempty,uuid"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending escalated in_progress resolved closed cancelled"`
}

type AttendIncidentRequest struct {
	Status  string `json:"status" validate:"required,oneof=in_progress resolved closed"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

type IncidentResponse struct {
	ID             string  `json:"id"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	ConversationID *string `json:"conversation_id,omitempty"`
	ReporterID     *string `json:"reporter_id,omitempty"`
	AssigneeID     *string `json:"assignee_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type IncidentDetailResponse struct {
	ID           string  `json:"id"`
	IncidentID   string  `json:"incident_id"`
	TechnicianID *string `json:"technician_id,omitempty"`
	Status       string  `json:"status"`
	Comment      string  `json:"comment"`
	OpenedAt     string  `json:"opened_at"`
	ClosedAt     *string `json:"closed_at,omitempty"`
}
