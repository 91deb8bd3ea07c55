package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
	"gorm.io/datatypes"
)

// EventPusher delivers live events to a user's open sockets
type EventPusher interface {
	Push(userID, eventType string, payload interface{})
}

// Presence reports whether a user currently has a live socket
type Presence interface {
	IsOnline(userID string) bool
}

// EventPublisher forwards events to the message bus
type EventPublisher interface {
	PublishMessage(key, value []byte) error
}

type Notifier interface {
	Notify(ctx context.Context, userID string, kind models.NotificationType, title, content string, data map[string]interface{})
}

type notifier struct {
	repo      repository.NotificationRepository
	pusher    EventPusher
	publisher EventPublisher
}

// NewNotifier builds the notification sink. pusher and publisher may be nil.
func NewNotifier(repo repository.NotificationRepository, pusher EventPusher, publisher EventPublisher) Notifier {
	return &notifier{repo: repo, pusher: pusher, publisher: publisher}
}

type notificationEvent struct {
	Event     string                  `json:"event"`
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Content   string                  `json:"content"`
	Data      datatypes.JSON          `json:"data,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// Notify persists the notification and fans it out. Failures are logged, never returned.
func (n *notifier) Notify(ctx context.Context, userID string, kind models.NotificationType, title, content string, data map[string]interface{}) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Content: content,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Printf("notifier: encode data for %s: %v", kind, err)
		} else {
			notification.Data = datatypes.JSON(raw)
		}
	}

	if err := n.repo.Create(ctx, notification); err != nil {
		log.Printf("notifier: store %s for user %s: %v", kind, userID, err)
		return
	}

	if n.pusher != nil {
		n.pusher.Push(userID, "notification", notification)
	}

	if n.publisher != nil {
		event := notificationEvent{
			Event:     "notification." + string(kind),
			ID:        notification.ID,
			UserID:    userID,
			Type:      kind,
			Title:     title,
			Content:   content,
			Data:      notification.Data,
			CreatedAt: notification.CreatedAt,
		}
		go n.publish(event)
	}
}

func (n *notifier) publish(event notificationEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("notifier: encode event %s: %v", event.Event, err)
		return
	}
	if err := n.publisher.PublishMessage([]byte(event.UserID), value); err != nil {
		log.Printf("notifier: publish %s: %v", event.Event, err)
	}
}
