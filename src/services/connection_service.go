package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
)

// Connection status as seen from one side of the pair
const (
	StatusNone            = "none"
	StatusConnected       = "connected"
	StatusPendingSent     = "pending_sent"
	StatusPendingReceived = "pending_received"
	StatusBlocked         = "blocked"
	StatusSelf            = "self"
)

const infoSharedContent = "İletişim bilgilerimi paylaştım."

func connectionStatusFor(viewerID string, conn *models.Connection) string {
	if conn == nil {
		return StatusNone
	}
	switch conn.Status {
	case models.ConnectionStatusAccepted:
		return StatusConnected
	case models.ConnectionStatusPending:
		if conn.InitiatorID == viewerID {
			return StatusPendingSent
		}
		return StatusPendingReceived
	case models.ConnectionStatusBlocked:
		return StatusBlocked
	default:
		return StatusNone
	}
}

type ConnectionService interface {
	RequestConnection(ctx context.Context, initiatorID string, in dto.ConnectionRequest) (*models.Connection, error)
	RespondToConnection(ctx context.Context, connectionID, responderID string, in dto.ConnectionResponseRequest) (*models.Connection, error)
	AuthorizeMessaging(ctx context.Context, connectionID, actorID string) (*models.Connection, error)
	BlockConnection(ctx context.Context, connectionID, actorID string) (*models.Connection, error)
	SetInfoSharing(ctx context.Context, connectionID, actorID string, shared bool) (*models.Connection, error)
	ListConnections(ctx context.Context, userID, status string) ([]models.Connection, error)
	ConnectionStatus(ctx context.Context, userID, otherID string) (string, *models.Connection, error)
}

type connectionService struct {
	users       repository.UserRepository
	connections repository.ConnectionRepository
	messages    repository.MessageRepository
	notifier    Notifier
}

func NewConnectionService(users repository.UserRepository, connections repository.ConnectionRepository, messages repository.MessageRepository, notifier Notifier) ConnectionService {
	return &connectionService{users: users, connections: connections, messages: messages, notifier: notifier}
}

func (s *connectionService) load(ctx context.Context, connectionID, notFoundMsg string) (*models.Connection, error) {
	conn, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(notFoundMsg)
		}
		return nil, internalError(err)
	}
	return conn, nil
}

// RequestConnection opens a PENDING request. A DECLINED pair is reopened in place;
// PENDING and ACCEPTED pairs conflict in either direction; BLOCKED pairs look like a missing user.
func (s *connectionService) RequestConnection(ctx context.Context, initiatorID string, in dto.ConnectionRequest) (*models.Connection, error) {
	in.ReceiverID = strings.TrimSpace(in.ReceiverID)
	if in.Message != nil {
		msg := strings.TrimSpace(*in.Message)
		in.Message = optionalString(msg)
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.ReceiverID == initiatorID {
		return nil, validationError(MsgSelfConnection)
	}

	initiator, err := s.users.FindByID(ctx, initiatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}
		return nil, internalError(err)
	}
	receiver, err := s.users.FindByID(ctx, in.ReceiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}
		return nil, internalError(err)
	}
	if !receiver.IsActive {
		return nil, notFoundError(MsgUserNotFound)
	}

	var connectionID string
	existing, err := s.connections.FindByPair(ctx, initiatorID, receiver.ID)
	switch {
	case err == nil:
		switch existing.Status {
		case models.ConnectionStatusPending:
			return nil, conflictError(MsgRequestPending)
		case models.ConnectionStatusAccepted:
			return nil, conflictError(MsgAlreadyConnected)
		case models.ConnectionStatusBlocked:
			return nil, notFoundError(MsgUserNotFound)
		}
		ok, err := s.connections.Reopen(ctx, existing.ID, initiatorID, receiver.ID, in.Message)
		if err != nil {
			return nil, internalError(err)
		}
		if !ok {
			return nil, conflictError(MsgRequestPending)
		}
		connectionID = existing.ID

	case errors.Is(err, repository.ErrNotFound):
		conn := &models.Connection{
			InitiatorID:       initiatorID,
			ReceiverID:        receiver.ID,
			Status:            models.ConnectionStatusPending,
			ConnectionMessage: in.Message,
		}
		if err := s.connections.Create(ctx, conn); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, conflictError(MsgRequestPending)
			}
			return nil, internalError(err)
		}
		connectionID = conn.ID

	default:
		return nil, internalError(err)
	}

	s.notifier.Notify(ctx, receiver.ID, models.NotificationTypeNewConnectionRequest,
		"Yeni Bağlantı İsteği",
		fmt.Sprintf("%s sizinle bağlantı kurmak istiyor.", initiator.Name),
		map[string]interface{}{"connectionId": connectionID, "userId": initiatorID})

	return s.load(ctx, connectionID, MsgConnectionNotFound)
}

// RespondToConnection lets the receiver of a PENDING request accept or decline it, once
func (s *connectionService) RespondToConnection(ctx context.Context, connectionID, responderID string, in dto.ConnectionResponseRequest) (*models.Connection, error) {
	in.Action = strings.ToLower(strings.TrimSpace(in.Action))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	conn, err := s.load(ctx, connectionID, MsgRequestNotFound)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != responderID || conn.Status != models.ConnectionStatusPending {
		return nil, notFoundError(MsgRequestNotFound)
	}

	target := models.ConnectionStatusDeclined
	if in.Action == "accept" {
		target = models.ConnectionStatusAccepted
	}
	ok, err := s.connections.TransitionStatus(ctx, conn.ID, []models.ConnectionStatus{models.ConnectionStatusPending}, target)
	if err != nil {
		return nil, internalError(err)
	}
	if !ok {
		return nil, notFoundError(MsgRequestNotFound)
	}

	if target == models.ConnectionStatusAccepted {
		s.notifier.Notify(ctx, conn.InitiatorID, models.NotificationTypeConnectionAccepted,
			"Bağlantı Kabul Edildi",
			fmt.Sprintf("%s bağlantı isteğinizi kabul etti.", conn.Receiver.Name),
			map[string]interface{}{"connectionId": conn.ID, "userId": responderID})
	}

	return s.load(ctx, conn.ID, MsgConnectionNotFound)
}

// AuthorizeMessaging is the gate every messaging operation passes. Missing, foreign and
// non-ACCEPTED connections all report NotFound.
func (s *connectionService) AuthorizeMessaging(ctx context.Context, connectionID, actorID string) (*models.Connection, error) {
	conn, err := s.load(ctx, connectionID, MsgConnectionNotFound)
	if err != nil {
		return nil, err
	}
	if !conn.HasParty(actorID) || conn.Status != models.ConnectionStatusAccepted {
		return nil, notFoundError(MsgConnectionNotFound)
	}
	return conn, nil
}

func (s *connectionService) BlockConnection(ctx context.Context, connectionID, actorID string) (*models.Connection, error) {
	conn, err := s.load(ctx, connectionID, MsgConnectionNotFound)
	if err != nil {
		return nil, err
	}
	if !conn.HasParty(actorID) {
		return nil, notFoundError(MsgConnectionNotFound)
	}
	if conn.Status == models.ConnectionStatusBlocked {
		return conn, nil
	}

	from := []models.ConnectionStatus{models.ConnectionStatusPending, models.ConnectionStatusAccepted}
	ok, err := s.connections.TransitionStatus(ctx, conn.ID, from, models.ConnectionStatusBlocked)
	if err != nil {
		return nil, internalError(err)
	}
	if !ok {
		return nil, notFoundError(MsgConnectionNotFound)
	}
	return s.load(ctx, conn.ID, MsgConnectionNotFound)
}

// SetInfoSharing sets the actor's own sharing flag. Turning it on posts an INFO_SHARED message.
func (s *connectionService) SetInfoSharing(ctx context.Context, connectionID, actorID string, shared bool) (*models.Connection, error) {
	conn, err := s.AuthorizeMessaging(ctx, connectionID, actorID)
	if err != nil {
		return nil, err
	}

	initiatorSide := conn.InitiatorID == actorID
	wasShared := conn.ReceiverSharedInfo
	if initiatorSide {
		wasShared = conn.InitiatorSharedInfo
	}

	ok, err := s.connections.SetSharedInfo(ctx, conn.ID, initiatorSide, shared)
	if err != nil {
		return nil, internalError(err)
	}
	if !ok {
		return nil, notFoundError(MsgConnectionNotFound)
	}

	if shared && !wasShared {
		receiverID := conn.OtherParty(actorID)
		msg := &models.Message{
			ConnectionID: conn.ID,
			SenderID:     actorID,
			ReceiverID:   receiverID,
			Content:      infoSharedContent,
			Type:         models.MessageTypeInfoShared,
		}
		if err := s.messages.Create(ctx, msg); err != nil {
			return nil, internalError(err)
		}

		actor := conn.Receiver
		if initiatorSide {
			actor = conn.Initiator
		}
		s.notifier.Notify(ctx, receiverID, models.NotificationTypeNewMessage,
			"İletişim Bilgisi Paylaşıldı",
			fmt.Sprintf("%s iletişim bilgilerini sizinle paylaştı.", actor.Name),
			map[string]interface{}{"connectionId": conn.ID, "messageId": msg.ID})
	}

	return s.load(ctx, conn.ID, MsgConnectionNotFound)
}

func (s *connectionService) ListConnections(ctx context.Context, userID, status string) ([]models.Connection, error) {
	var statuses []models.ConnectionStatus
	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		switch st := models.ConnectionStatus(status); st {
		case models.ConnectionStatusPending, models.ConnectionStatusAccepted,
			models.ConnectionStatusDeclined, models.ConnectionStatusBlocked:
			statuses = append(statuses, st)
		default:
			return nil, validationError(MsgInvalidInput)
		}
	}

	conns, err := s.connections.ListForUser(ctx, userID, statuses...)
	if err != nil {
		return nil, internalError(err)
	}
	return conns, nil
}

func (s *connectionService) ConnectionStatus(ctx context.Context, userID, otherID string) (string, *models.Connection, error) {
	if userID == otherID {
		return StatusSelf, nil, nil
	}
	conn, err := s.connections.FindByPair(ctx, userID, otherID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return StatusNone, nil, nil
		}
		return "", nil, internalError(err)
	}
	return connectionStatusFor(userID, conn), conn, nil
}
