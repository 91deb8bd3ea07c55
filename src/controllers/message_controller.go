package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/services"
)

type MessageController struct {
	messages services.MessageService
}

func NewMessageController(messages services.MessageService) *MessageController {
	return &MessageController{messages: messages}
}

func (h *MessageController) GetConversations(c *fiber.Ctx) error {
	conversations, err := h.messages.ListConversations(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": conversations})
}

// GetThread returns the connection and its messages, marking incoming ones read
func (h *MessageController) GetThread(c *fiber.Ctx) error {
	userID := currentUserID(c)
	conn, messages, err := h.messages.ListThread(c.UserContext(), c.Params("connectionId"), userID)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]models.MessageDto, 0, len(messages))
	for _, m := range messages {
		views = append(views, m.ToDto())
	}
	return c.JSON(fiber.Map{
		"connection": conn.ToDto(userID),
		"messages":   views,
	})
}

func (h *MessageController) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	msg, err := h.messages.SendMessage(c.UserContext(), c.Params("connectionId"), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg.ToDto()})
}
