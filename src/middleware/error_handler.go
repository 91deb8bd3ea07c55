package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/lib"
)

// ErrorHandler turns anything a handler returns unhandled into a JSON error body
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Sunucu hatası"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		if code < fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(lib.ErrorResponse(message))
}
