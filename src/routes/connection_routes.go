package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/controllers"
)

// ConnectionRoutes sets up requesting, answering, blocking, sharing, listing and status routes
func ConnectionRoutes(app *fiber.App, h *controllers.ConnectionController, protect fiber.Handler) {
	connection := app.Group("/api/v1/connections", protect)

	connection.Post("/", h.SendConnectionRequest)
	connection.Get("/", h.GetConnections)
	connection.Get("/status/:userId", h.GetConnectionStatus)
	connection.Put("/:id", h.RespondToConnection)
	connection.Post("/:id/block", h.BlockConnection)
	connection.Put("/:id/share", h.ShareInfo)
}
