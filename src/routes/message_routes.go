package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/controllers"
)

func MessageRoutes(app *fiber.App, h *controllers.MessageController, protect fiber.Handler) {
	messages := app.Group("/api/v1/messages", protect)

	messages.Get("/", h.GetConversations)
	messages.Get("/:connectionId", h.GetThread)
	messages.Post("/:connectionId", h.SendMessage)
}
