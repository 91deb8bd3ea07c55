package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/middleware"
	"github.com/therive/therive-backend/src/services"
)

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindAuthentication:
		return fiber.StatusUnauthorized
	case services.KindForbidden:
		return fiber.StatusForbidden
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	case services.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the service error as {"error": ...}; internal causes only go to the log
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(services.KindOf(err))
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(lib.ErrorResponse(services.MessageOf(err)))
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse(services.MsgInvalidInput))
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	return id
}
