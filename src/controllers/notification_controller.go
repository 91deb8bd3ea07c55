package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/services"
)

type NotificationController struct {
	notifications services.NotificationService
}

func NewNotificationController(notifications services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// GetUserNotifications returns the 50 most recent notifications and the unread count
func (h *NotificationController) GetUserNotifications(c *fiber.Ctx) error {
	notifications, unread, err := h.notifications.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// UpdateNotifications handles {"action": "mark_read", "notificationIds": [...]} and {"action": "mark_all_read"}
func (h *NotificationController) UpdateNotifications(c *fiber.Ctx) error {
	var req dto.NotificationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	if err := h.notifications.Update(c.UserContext(), currentUserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(lib.MessageResponse(services.MsgNotificationsUpdated))
}

func (h *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	if err := h.notifications.Delete(c.UserContext(), currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(lib.MessageResponse(services.MsgNotificationDeleted))
}
