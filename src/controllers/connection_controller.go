package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/services"
)

type ConnectionController struct {
	connections services.ConnectionService
}

func NewConnectionController(connections services.ConnectionService) *ConnectionController {
	return &ConnectionController{connections: connections}
}

// SendConnectionRequest sends a connection request from the authenticated user to body.receiverId
func (h *ConnectionController) SendConnectionRequest(c *fiber.Ctx) error {
	var req dto.ConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	userID := currentUserID(c)
	conn, err := h.connections.RequestConnection(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    services.MsgRequestSent,
		"connection": conn.ToDto(userID),
	})
}

// RespondToConnection accepts or declines a pending request addressed to the caller
func (h *ConnectionController) RespondToConnection(c *fiber.Ctx) error {
	var req dto.ConnectionResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	userID := currentUserID(c)
	conn, err := h.connections.RespondToConnection(c.UserContext(), c.Params("id"), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	message := services.MsgRequestDeclined
	if conn.Status == models.ConnectionStatusAccepted {
		message = services.MsgRequestAccepted
	}
	return c.JSON(fiber.Map{
		"message":    message,
		"connection": conn.ToDto(userID),
	})
}

func (h *ConnectionController) BlockConnection(c *fiber.Ctx) error {
	userID := currentUserID(c)
	conn, err := h.connections.BlockConnection(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    services.MsgConnectionBlockedOK,
		"connection": conn.ToDto(userID),
	})
}

// ShareInfo sets the caller's info-sharing flag; body.shared defaults to true
func (h *ConnectionController) ShareInfo(c *fiber.Ctx) error {
	var req dto.InfoShareRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c)
		}
	}
	shared := true
	if req.Shared != nil {
		shared = *req.Shared
	}

	userID := currentUserID(c)
	conn, err := h.connections.SetInfoSharing(c.UserContext(), c.Params("id"), userID, shared)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    services.MsgInfoShared,
		"connection": conn.ToDto(userID),
	})
}

// GetConnections lists the caller's connections, optionally filtered by ?status=
func (h *ConnectionController) GetConnections(c *fiber.Ctx) error {
	userID := currentUserID(c)
	conns, err := h.connections.ListConnections(c.UserContext(), userID, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]models.ConnectionDto, 0, len(conns))
	for _, conn := range conns {
		views = append(views, conn.ToDto(userID))
	}
	return c.JSON(fiber.Map{"connections": views})
}

func (h *ConnectionController) GetConnectionStatus(c *fiber.Ctx) error {
	status, conn, err := h.connections.ConnectionStatus(c.UserContext(), currentUserID(c), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}

	body := fiber.Map{"status": status}
	if conn != nil {
		body["connectionId"] = conn.ID
	}
	return c.JSON(body)
}
