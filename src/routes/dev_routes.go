package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/controllers"
)

func HealthRoutes(app *fiber.App) {
	app.Get("/api/v1/health", controllers.Health)
}

// DevRoutes must only be registered outside prod
func DevRoutes(app *fiber.App, h *controllers.DevController) {
	dev := app.Group("/api/v1/dev")
	dev.Post("/seed", h.SeedUsers)
}
