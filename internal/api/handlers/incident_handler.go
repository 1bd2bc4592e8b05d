package handlers

import (
	"context"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IncidentService interface {
	Create(ctx context.Context, reporterID uuid.UUID, req *dto.CreateIncidentRequest) (*models.Incident, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	List(ctx context.Context, filter repository.IncidentFilter) ([]*models.Incident, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateIncidentRequest) (*models.Incident, error)
	ChangeStatus(ctx context.Context, id, actorID uuid.UUID, status models.IncidentStatus) (*models.Incident, error)
	Attend(ctx context.Context, id, technicianID uuid.UUID, req *dto.AttendIncidentRequest) (*models.IncidentDetail, error)
	History(ctx context.Context, id uuid.UUID) ([]*models.IncidentDetail, error)
}

type IncidentHandler struct {
	incidents IncidentService
	logger    *zap.Logger
}

func NewIncidentHandler(incidents IncidentService, logger *zap.Logger) *IncidentHandler {
	return &IncidentHandler{
		incidents: incidents,
		logger:    logger,
	}
}

// CreateIncident godoc
// @Summary Open an incident
// @Tags incidents
// @Accept json
// @Produce json
// @Param request body dto.CreateIncidentRequest true "Incident"
// @Security Bearer
// @Success 201 {object} dto.IncidentResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/incidents [post]
func (h *IncidentHandler) CreateIncident(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateIncidentRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create incident")
	}

	inc, err := h.incidents.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create incident")
	}
	return c.Status(fiber.StatusCreated).JSON(toIncidentResponse(inc))
}

// ListIncidents godoc
// @Summary List incidents
// @Tags incidents
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.IncidentResponse
// @Router /api/v1/incidents [get]
func (h *IncidentHandler) ListIncidents(c *fiber.Ctx) error {
	filter := repository.IncidentFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if s := c.Query("status"); s != "" {
		status := models.IncidentStatus(s)
		filter.Status = &status
	}

	incidents, err := h.incidents.List(c.Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list incidents")
	}

	resp := make([]dto.IncidentResponse, 0, len(incidents))
	for _, inc := range incidents {
		resp = append(resp, toIncidentResponse(inc))
	}
	return c.JSON(resp)
}

// GetIncident godoc
// @Summary Get an incident
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Security Bearer
// @Success 200 {object} dto.IncidentResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/incidents/{id} [get]
func (h *IncidentHandler) GetIncident(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	inc, err := h.incidents.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get incident")
	}
	return c.JSON(toIncidentResponse(inc))
}

// UpdateIncident godoc
// @Summary Edit an incident
// @Description Priority and category are locked once the incident is resolved or closed
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.UpdateIncidentRequest true "Fields to change"
// @Security Bearer
// @Success 200 {object} dto.IncidentResponse
// @Failure 409 {object} map[string]string
// @Router /api/v1/incidents/{id} [put]
func (h *IncidentHandler) UpdateIncident(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req dto.UpdateIncidentRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update incident")
	}

	inc, err := h.incidents.Update(c.Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update incident")
	}
	return c.JSON(toIncidentResponse(inc))
}

// ChangeStatus godoc
// @Summary Change an incident's status
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.ChangeStatusRequest true "Status"
// @Security Bearer
// @Success 200 {object} dto.IncidentResponse
// @Router /api/v1/incidents/{id}/status [put]
func (h *IncidentHandler) ChangeStatus(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req dto.ChangeStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to change status")
	}

	inc, err := h.incidents.ChangeStatus(c.Context(), id, userID, models.IncidentStatus(req.Status))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to change status")
	}
	return c.JSON(toIncidentResponse(inc))
}

// AttendIncident godoc
// @Summary Record a technician's attention
// @Tags incidents
// @Accept json
// @Produce json
// @Param id path string true "Incident ID"
// @Param request body dto.AttendIncidentRequest true "Attention"
// @Security Bearer
// @Success 201 {object} dto.IncidentDetailResponse
// @Router /api/v1/incidents/{id}/attend [post]
func (h *IncidentHandler) AttendIncident(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req dto.AttendIncidentRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to attend incident")
	}

	detail, err := h.incidents.Attend(c.Context(), id, userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to attend incident")
	}
	return c.Status(fiber.StatusCreated).JSON(toIncidentDetailResponse(detail))
}

// History godoc
// @Summary Attention history of an incident
// @Tags incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Security Bearer
// @Success 200 {array} dto.IncidentDetailResponse
// @Router /api/v1/incidents/{id}/history [get]
func (h *IncidentHandler) History(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	details, err := h.incidents.History(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get history")
	}

	resp := make([]dto.IncidentDetailResponse, 0, len(details))
	for _, d := range details {
		resp = append(resp, toIncidentDetailResponse(d))
	}
	return c.JSON(resp)
}
