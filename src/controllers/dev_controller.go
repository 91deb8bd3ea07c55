package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/seed"
	"github.com/therive/therive-backend/src/services"
)

type DevController struct {
	auth services.AuthService
}

func NewDevController(auth services.AuthService) *DevController {
	return &DevController{auth: auth}
}

// SeedUsers creates ?count= fake accounts (default 10) sharing seed.DefaultPassword
func (h *DevController) SeedUsers(c *fiber.Ctx) error {
	created, err := seed.Users(c.UserContext(), h.auth, c.QueryInt("count", 10))
	if err != nil {
		return respondError(c, err)
	}

	users := make([]models.UserDto, 0, len(created))
	for _, u := range created {
		users = append(users, u.ToDto())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"created":  len(users),
		"password": seed.DefaultPassword,
		"users":    users,
	})
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
