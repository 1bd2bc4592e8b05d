package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EscalationRejected = "rejected"
	EscalationFailure  = "failure"
)

type IncidentService struct {
	incidents IncidentStore
	directory Directory
	logger    *zap.Logger
}

func NewIncidentService(incidents IncidentStore, directory Directory, logger *zap.Logger) *IncidentService {
	return &IncidentService{
		incidents: incidents,
		directory: directory,
		logger:    logger.Named("incident"),
	}
}

// Escalate creates or updates the incident of a conversation in escalated
// status and hands it to the first technician found. reason is recorded in
// the incident history.
func (s *IncidentService) Escalate(ctx context.Context, conv *models.Conversation, problem, comment, reason string) (*models.Incident, error) {
	inc, err := s.forConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if inc == nil {
		category := DetectCategory(problem)
		inc = &models.Incident{
			ID:             uuid.New(),
			Description:    withComment(problem, comment),
			Category:       category,
			Priority:       PriorityForCategory(category),
			Status:         models.IncidentEscalated,
			ConversationID: &conv.ID,
			ReporterID:     &conv.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		s.assignTechnician(ctx, inc)
		if err := s.incidents.Create(ctx, inc); err != nil {
			return nil, fmt.Errorf("failed to create incident: %w", err)
		}
	} else {
		inc.Status = models.IncidentEscalated
		inc.Description = withComment(inc.Description, comment)
		inc.UpdatedAt = now
		s.assignTechnician(ctx, inc)
		if err := s.incidents.Update(ctx, inc); err != nil {
			return nil, fmt.Errorf("failed to update incident: %w", err)
		}
	}

	s.addDetail(ctx, inc, inc.AssigneeID, "Escalado desde el chat: "+reason, false)
	escalationsTotal.WithLabelValues(reason).Inc()

	s.logger.Info("Incident escalated",
		zap.String("incident_id", inc.ID.String()),
		zap.String("conversation_id", conv.ID.String()),
		zap.String("reason", reason),
	)
	return inc, nil
}

// MarkResolved creates or updates the incident of a conversation as resolved.
func (s *IncidentService) MarkResolved(ctx context.Context, conv *models.Conversation, problem string) (*models.Incident, error) {
	inc, err := s.forConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if inc == nil {
		category := DetectCategory(problem)
		inc = &models.Incident{
			ID:             uuid.New(),
			Description:    problem,
			Category:       category,
			Priority:       PriorityForCategory(category),
			Status:         models.IncidentResolved,
			ConversationID: &conv.ID,
			ReporterID:     &conv.UserID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.incidents.Create(ctx, inc); err != nil {
			return nil, fmt.Errorf("failed to create incident: %w", err)
		}
	} else {
		inc.Status = models.IncidentResolved
		inc.UpdatedAt = now
		if err := s.incidents.Update(ctx, inc); err != nil {
			return nil, fmt.Errorf("failed to update incident: %w", err)
		}
	}

	s.addDetail(ctx, inc, inc.AssigneeID, "Resuelto por el usuario desde el chat", true)
	s.logger.Info("Incident resolved from chat",
		zap.String("incident_id", inc.ID.String()),
		zap.String("conversation_id", conv.ID.String()),
	)
	return inc, nil
}

func (s *IncidentService) forConversation(ctx context.Context, conversationID uuid.UUID) (*models.Incident, error) {
	inc, err := s.incidents.GetByConversationID(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load incident: %w", err)
	}
	return inc, nil
}

func (s *IncidentService) assignTechnician(ctx context.Context, inc *models.Incident) {
	if inc.AssigneeID != nil {
		return
	}
	tech, err := s.directory.FindByRole(ctx, models.RoleTechnician)
	if err != nil {
		s.logger.Warn("Technician lookup failed", zap.String("incident_id", inc.ID.String()), zap.Error(err))
		return
	}
	if tech == nil {
		s.logger.Warn("No technician available", zap.String("incident_id", inc.ID.String()))
		return
	}
	inc.AssigneeID = &tech.ID
}

// addDetail appends a history entry. History is informative, so failures are
// only logged.
func (s *IncidentService) addDetail(ctx context.Context, inc *models.Incident, technicianID *uuid.UUID, comment string, closed bool) {
	now := time.Now()
	detail := &models.IncidentDetail{
		ID:           uuid.New(),
		IncidentID:   inc.ID,
		TechnicianID: technicianID,
		Status:       inc.Status,
		Comment:      comment,
		OpenedAt:     now,
	}
	if closed {
		detail.ClosedAt = &now
	}
	if err := s.incidents.CreateDetail(ctx, detail); err != nil {
		s.logger.Warn("Failed to record incident history",
			zap.String("incident_id", inc.ID.String()),
			zap.Error(err),
		)
	}
}

func withComment(description, comment string) string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return description
	}
	return description + "\n\nComentario del usuario: " + comment
}

// Create opens an incident by hand. Category and priority are derived from
// the description when omitted.
func (s *IncidentService) Create(ctx context.Context, reporterID uuid.UUID, req *dto.CreateIncidentRequest) (*models.Incident, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DetectCategory(req.Description)
	}
	priority := models.IncidentPriority(req.Priority)
	if priority == "" {
		priority = PriorityForCategory(category)
	}

	now := time.Now()
	inc := &models.Incident{
		ID:          uuid.New(),
		Description: sanitizeUTF8(req.Description),
		Category:    category,
		Priority:    priority,
		Status:      models.IncidentPending,
		ReporterID:  &reporterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.incidents.Create(ctx, inc); err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	s.logger.Info("Incident created", zap.String("incident_id", inc.ID.String()))
	return inc, nil
}

func (s *IncidentService) Get(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	inc, err := s.incidents.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load incident: %w", err)
	}
	return inc, nil
}

func (s *IncidentService) List(ctx context.Context, filter repository.IncidentFilter) ([]*models.Incident, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	filter.Limit, filter.Offset = pageBounds(filter.Limit, filter.Offset)
	return s.incidents.List(ctx, filter)
}

// Update edits the present fields. Priority and category cannot change once
// the incident is resolved or closed.
func (s *IncidentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateIncidentRequest) (*models.Incident, error) {
	inc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if inc.Status.IsTerminal() {
		if req.Category != nil && *req.Category != inc.Category {
			return nil, ErrIncidentLocked
		}
		if req.Priority != nil && models.IncidentPriority(*req.Priority) != inc.Priority {
			return nil, ErrIncidentLocked
		}
	}

	if req.Description != nil {
		inc.Description = sanitizeUTF8(*req.Description)
	}
	if req.Category != nil {
		inc.Category = *req.Category
	}
	if req.Priority != nil {
		inc.Priority = models.IncidentPriority(*req.Priority)
	}
	if req.AssigneeID != nil {
		assignee, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee id: %w", err)
		}
		inc.AssigneeID = &assignee
	}
	inc.UpdatedAt = time.Now()

	if err := s.incidents.Update(ctx, inc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIncidentNotFound
		}
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}
	return inc, nil
}

func (s *IncidentService) ChangeStatus(ctx context.Context, id, actorID uuid.UUID, status models.IncidentStatus) (*models.Incident, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	inc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inc.Status = status
	inc.UpdatedAt = time.Now()
	if err := s.incidents.Update(ctx, inc); err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	s.addDetail(ctx, inc, &actorID, "Estado cambiado a "+string(status), status.IsTerminal())
	s.logger.Info("Incident status changed",
		zap.String("incident_id", inc.ID.String()),
		zap.String("status", string(status)),
	)
	return inc, nil
}

// Attend records a technician's work on an incident. The technician takes
// the incident when it has no assignee.
func (s *IncidentService) Attend(ctx context.Context, id, technicianID uuid.UUID, req *dto.AttendIncidentRequest) (*models.IncidentDetail, error) {
	status := models.IncidentStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	inc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inc.Status = status
	if inc.AssigneeID == nil {
		inc.AssigneeID = &technicianID
	}
	inc.UpdatedAt = now
	if err := s.incidents.Update(ctx, inc); err != nil {
		return nil, fmt.Errorf("failed to update incident: %w", err)
	}

	detail := &models.IncidentDetail{
		ID:           uuid.New(),
		IncidentID:   inc.ID,
		TechnicianID: &technicianID,
		Status:       status,
		Comment:      sanitizeUTF8(req.Comment),
		OpenedAt:     now,
	}
	if status.IsTerminal() {
		detail.ClosedAt = &now
	}
	if err := s.incidents.CreateDetail(ctx, detail); err != nil {
		return nil, fmt.Errorf("failed to record attention: %w", err)
	}
	return detail, nil
}

func (s *IncidentService) History(ctx context.Context, id uuid.UUID) ([]*models.IncidentDetail, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.incidents.ListDetails(ctx, id)
}
