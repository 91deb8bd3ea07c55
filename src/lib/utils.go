package lib

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Returns a map with a message key for API responses
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

// Returns a map with an error key for API responses
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"error": message,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
