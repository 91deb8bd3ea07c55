package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/controllers"
)

// NotificationRoutes sets up listing, marking read and deleting notifications
func NotificationRoutes(app *fiber.App, h *controllers.NotificationController, protect fiber.Handler) {
	notification := app.Group("/api/v1/notifications", protect)

	notification.Get("/", h.GetUserNotifications)
	notification.Put("/", h.UpdateNotifications)
	notification.Delete("/:id", h.DeleteNotification)
}
