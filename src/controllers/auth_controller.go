package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/services"
)

type AuthController struct {
	auth services.AuthService
}

func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Signup registers a new account and returns it with a session token
func (h *AuthController) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, token, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": services.MsgSignupOK,
		"user":    user.ToDto(),
		"token":   token,
	})
}

// Signin checks credentials and returns a session token
func (h *AuthController) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, token, err := h.auth.Authenticate(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": services.MsgLoginOK,
		"user":    user.ToDto(),
		"token":   token,
	})
}

// Logout is stateless; the client drops its token
func (h *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(lib.MessageResponse(services.MsgLogoutOK))
}

func (h *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	user, err := h.auth.Me(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user.ToDto()})
}

func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	if err := h.auth.ChangePassword(c.UserContext(), currentUserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(lib.MessageResponse(services.MsgPasswordChanged))
}
