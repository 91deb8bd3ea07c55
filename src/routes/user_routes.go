package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/controllers"
)

// UserRoutes sets up profile editing, avatar upload, discovery, public profiles and the tag catalog
func UserRoutes(app *fiber.App, h *controllers.UserController, protect fiber.Handler) {
	user := app.Group("/api/v1/user", protect)
	user.Put("/profile", h.UpdateProfile)
	user.Post("/avatar", h.UploadAvatar)

	app.Get("/api/v1/discover", protect, h.Discover)
	app.Get("/api/v1/users/:id", protect, h.GetPublicProfile)
	app.Get("/api/v1/tags", h.ListIntentTags)
}
