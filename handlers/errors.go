package handlers

import (
	"errors"

	"sweat-battle-system/game"
	"sweat-battle-system/logging"
	"sweat-battle-system/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrTerminalState), errors.Is(err, services.ErrDuplicateAction):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrParticipant):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, game.ErrInvalidLevel):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrConcurrency):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logging.Error(msg, err, logging.Fields{"path": c.Path(), "method": c.Method()})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
