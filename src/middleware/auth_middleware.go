package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/lib"
)

const (
	UserIDKey = "userId"
	EmailKey  = "email"
)

// ProtectRoute checks for a valid bearer token and attaches the caller's id and email to the request context
func ProtectRoute(tokens *lib.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := lib.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Yetkisiz erişim"))
		}

		claims := tokens.Resolve(token)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Yetkisiz erişim"))
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(EmailKey, claims.Email)

		return c.Next()
	}
}
