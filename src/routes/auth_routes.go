package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/controllers"
)

// AuthRoutes sets up signup, signin, logout, current user and password change routes
func AuthRoutes(app *fiber.App, h *controllers.AuthController, protect fiber.Handler) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/signup", h.Signup)
	auth.Post("/signin", h.Signin)
	auth.Post("/logout", protect, h.Logout)
	auth.Get("/me", protect, h.GetCurrentUser)

	app.Put("/api/v1/user/password", protect, h.ChangePassword)
}
