package handlers

import (
	"context"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KnowledgeService interface {
	Search(ctx context.Context, query string) ([]*models.KnowledgeEntry, error)
	List(ctx context.Context, limit, offset int) ([]*models.KnowledgeEntry, error)
	Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type KnowledgeHandler struct {
	knowledge KnowledgeService
	logger    *zap.Logger
}

func NewKnowledgeHandler(knowledge KnowledgeService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledge: knowledge,
		logger:    logger,
	}
}

func entriesResponse(entries []*models.KnowledgeEntry) []dto.KnowledgeEntryResponse {
	resp := make([]dto.KnowledgeEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toKnowledgeResponse(e))
	}
	return resp
}

// ListEntries godoc
// @Summary List knowledge base entries
// @Tags knowledge
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.KnowledgeEntryResponse
// @Router /api/v1/knowledge [get]
func (h *KnowledgeHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.knowledge.List(c.Context(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list knowledge base")
	}
	return c.JSON(entriesResponse(entries))
}

// SearchEntries godoc
// @Summary Search the knowledge base
// @Description Same keyword matching the chat agent uses
// @Tags knowledge
// @Produce json
// @Param q query string true "Problem description"
// @Security Bearer
// @Success 200 {array} dto.KnowledgeEntryResponse
// @Router /api/v1/knowledge/search [get]
func (h *KnowledgeHandler) SearchEntries(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter q is required",
		})
	}

	entries, err := h.knowledge.Search(c.Context(), q)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to search knowledge base")
	}
	return c.JSON(entriesResponse(entries))
}

// GetEntry godoc
// @Summary Get a knowledge base entry
// @Tags knowledge
// @Produce json
// @Param id path string true "Entry ID"
// @Security Bearer
// @Success 200 {object} dto.KnowledgeEntryResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/knowledge/{id} [get]
func (h *KnowledgeHandler) GetEntry(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	entry, err := h.knowledge.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get knowledge entry")
	}
	return c.JSON(toKnowledgeResponse(entry))
}

// DeleteEntry godoc
// @Summary Delete a knowledge base entry
// @Tags knowledge
// @Param id path string true "Entry ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/knowledge/{id} [delete]
func (h *KnowledgeHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	if err := h.knowledge.Delete(c.Context(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete knowledge entry")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
