package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/services"
)

type UserController struct {
	users services.UserService
}

func NewUserController(users services.UserService) *UserController {
	return &UserController{users: users}
}

func (h *UserController) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": services.MsgProfileUpdated,
		"user":    user.ToDto(),
	})
}

// Discover lists other users, filtered by ?q= and ?tags=a,b, paged by ?page= and ?limit=
func (h *UserController) Discover(c *fiber.Ctx) error {
	query := dto.DiscoverQuery{
		Query: strings.TrimSpace(c.Query("q")),
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}
	if raw := c.Query("tags"); raw != "" {
		query.Tags = strings.Split(raw, ",")
	}

	result, err := h.users.Discover(c.UserContext(), currentUserID(c), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetPublicProfile returns another user's profile as the caller may see it
func (h *UserController) GetPublicProfile(c *fiber.Ctx) error {
	profile, err := h.users.PublicProfile(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": profile})
}

func (h *UserController) ListIntentTags(c *fiber.Ctx) error {
	tags, err := h.users.ListIntentTags(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// UploadAvatar expects a multipart "avatar" file
func (h *UserController) UploadAvatar(c *fiber.Ctx) error {
	header, err := c.FormFile("avatar")
	if err != nil {
		return badRequest(c)
	}

	file, err := header.Open()
	if err != nil {
		return badRequest(c)
	}
	defer file.Close()

	user, err := h.users.UploadAvatar(c.UserContext(), currentUserID(c), header.Filename, header.Size, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": services.MsgAvatarUpdated,
		"user":    user.ToDto(),
	})
}
