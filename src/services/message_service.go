package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
)

type MessageService interface {
	ListThread(ctx context.Context, connectionID, actorID string) (*models.Connection, []models.Message, error)
	SendMessage(ctx context.Context, connectionID, senderID string, in dto.SendMessageRequest) (*models.Message, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
}

type messageService struct {
	connections ConnectionService
	connRepo    repository.ConnectionRepository
	messages    repository.MessageRepository
	notifier    Notifier
	pusher      EventPusher
	presence    Presence
}

// NewMessageService builds the messaging store. pusher and presence may be nil.
func NewMessageService(connections ConnectionService, connRepo repository.ConnectionRepository, messages repository.MessageRepository, notifier Notifier, pusher EventPusher, presence Presence) MessageService {
	return &messageService{
		connections: connections,
		connRepo:    connRepo,
		messages:    messages,
		notifier:    notifier,
		pusher:      pusher,
		presence:    presence,
	}
}

// ListThread returns the thread oldest first, then marks the other party's messages read.
// The returned messages carry the read flags from before the update.
func (s *messageService) ListThread(ctx context.Context, connectionID, actorID string) (*models.Connection, []models.Message, error) {
	conn, err := s.connections.AuthorizeMessaging(ctx, connectionID, actorID)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.messages.ListByConnection(ctx, conn.ID)
	if err != nil {
		return nil, nil, internalError(err)
	}

	if _, err := s.messages.MarkThreadRead(ctx, conn.ID, actorID); err != nil {
		return nil, nil, internalError(err)
	}
	return conn, messages, nil
}

func (s *messageService) SendMessage(ctx context.Context, connectionID, senderID string, in dto.SendMessageRequest) (*models.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	conn, err := s.connections.AuthorizeMessaging(ctx, connectionID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConnectionID: conn.ID,
		SenderID:     senderID,
		ReceiverID:   conn.OtherParty(senderID),
		Content:      in.Content,
		Type:         models.MessageTypeText,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, internalError(err)
	}
	msg.Sender = conn.OtherUser(msg.ReceiverID)

	if s.pusher != nil {
		s.pusher.Push(msg.ReceiverID, "message", msg.ToDto())
	}
	s.notifier.Notify(ctx, msg.ReceiverID, models.NotificationTypeNewMessage,
		"Yeni Mesaj",
		fmt.Sprintf("%s size bir mesaj gönderdi.", msg.Sender.Name),
		map[string]interface{}{"connectionId": conn.ID, "messageId": msg.ID})

	return msg, nil
}

// ListConversations builds one entry per ACCEPTED connection, most recent message first,
// threads without messages last
func (s *messageService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	conns, err := s.connRepo.ListForUser(ctx, userID, models.ConnectionStatusAccepted)
	if err != nil {
		return nil, internalError(err)
	}

	ids := make([]string, 0, len(conns))
	for _, conn := range conns {
		ids = append(ids, conn.ID)
	}
	unread, err := s.messages.UnreadCounts(ctx, userID, ids)
	if err != nil {
		return nil, internalError(err)
	}

	conversations := make([]models.Conversation, 0, len(conns))
	for _, conn := range conns {
		other := conn.OtherUser(userID)
		conversation := models.Conversation{
			ID:          conn.ID,
			UserID:      other.ID,
			Name:        other.Name,
			Email:       other.Email,
			Avatar:      other.Avatar,
			UnreadCount: unread[conn.ID],
			InfoShared:  conn.FullyShared(),
			ConnectedAt: conn.UpdatedAt,
		}
		if s.presence != nil {
			conversation.IsOnline = s.presence.IsOnline(other.ID)
		}

		last, err := s.messages.LastMessage(ctx, conn.ID)
		switch {
		case err == nil:
			conversation.LastMessage = &models.LastMessage{
				Content:   last.Content,
				CreatedAt: last.CreatedAt,
				IsFromMe:  last.SenderID == userID,
			}
		case !errors.Is(err, repository.ErrNotFound):
			return nil, internalError(err)
		}

		conversations = append(conversations, conversation)
	}

	slices.SortStableFunc(conversations, func(a, b models.Conversation) int {
		return lastActivity(b).Compare(lastActivity(a))
	})
	return conversations, nil
}

func lastActivity(c models.Conversation) time.Time {
	if c.LastMessage == nil {
		return time.Time{}
	}
	return c.LastMessage.CreatedAt
}
