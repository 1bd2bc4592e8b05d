package handlers

import (
	"errors"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

var errInvalidBody = errors.New("Invalid request body")

// bindJSON decodes and validates a JSON request body.
func bindJSON(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return dto.Validate(req)
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and answered with fallback.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	var verr *dto.ValidationError
	var ferr *fiber.Error
	status := fiber.StatusInternalServerError
	message := fallback

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.As(err, &ferr):
		status, message = ferr.Code, ferr.Message
	case errors.Is(err, errInvalidBody):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrConversationNotFound),
		errors.Is(err, service.ErrIncidentNotFound),
		errors.Is(err, service.ErrKnowledgeNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrConversationClosed),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrIncidentLocked):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidStatus):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrQueueFull), errors.Is(err, service.ErrQueueStopped):
		status, message = fiber.StatusServiceUnavailable, err.Error()
	default:
		if logger != nil {
			logger.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
