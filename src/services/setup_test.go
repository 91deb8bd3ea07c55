package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
	"github.com/therive/therive-backend/src/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type pushedEvent struct {
	UserID    string
	EventType string
	Payload   interface{}
}

type recordingPusher struct {
	mu     sync.Mutex
	events []pushedEvent
	online map[string]bool
}

func (p *recordingPusher) Push(userID, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pushedEvent{UserID: userID, EventType: eventType, Payload: payload})
}

func (p *recordingPusher) IsOnline(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online[userID]
}

func (p *recordingPusher) eventsFor(userID string) []pushedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []pushedEvent
	for _, e := range p.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

type env struct {
	db            *gorm.DB
	users         repository.UserRepository
	connRepo      repository.ConnectionRepository
	messageRepo   repository.MessageRepository
	notifications repository.NotificationRepository
	pusher        *recordingPusher
	tokens        *lib.TokenIssuer

	auth         AuthService
	directory    UserService
	connections  ConnectionService
	messages     MessageService
	notification NotificationService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	e := &env{
		db:            db,
		users:         repository.NewUserRepository(db),
		connRepo:      repository.NewConnectionRepository(db),
		messageRepo:   repository.NewMessageRepository(db),
		notifications: repository.NewNotificationRepository(db),
		pusher:        &recordingPusher{online: map[string]bool{}},
		tokens:        lib.NewTokenIssuer("test-secret", time.Hour),
	}

	notifier := NewNotifier(e.notifications, e.pusher, nil)
	e.auth = NewAuthService(e.users, e.tokens, notifier, bcrypt.MinCost)
	e.directory = NewUserService(e.users, e.connRepo, notifier, nil)
	e.connections = NewConnectionService(e.users, e.connRepo, e.messageRepo, notifier)
	e.messages = NewMessageService(e.connections, e.connRepo, e.messageRepo, notifier, e.pusher, e.pusher)
	e.notification = NewNotificationService(e.notifications)
	return e
}

func (e *env) signup(t *testing.T, name, email string, tags ...string) *models.User {
	t.Helper()
	user, _, err := e.auth.Register(context.Background(), dto.SignupRequest{
		Name:         name,
		Email:        email,
		Password:     "password1",
		SelectedTags: tags,
	})
	require.NoError(t, err)
	return user
}

// connect creates an ACCEPTED connection initiated by a
func (e *env) connect(t *testing.T, a, b *models.User) *models.Connection {
	t.Helper()
	ctx := context.Background()
	conn, err := e.connections.RequestConnection(ctx, a.ID, dto.ConnectionRequest{ReceiverID: b.ID})
	require.NoError(t, err)
	conn, err = e.connections.RespondToConnection(ctx, conn.ID, b.ID, dto.ConnectionResponseRequest{Action: "accept"})
	require.NoError(t, err)
	return conn
}

func (e *env) notificationsOf(t *testing.T, userID string, kind models.NotificationType) []models.Notification {
	t.Helper()
	list, _, err := e.notification.List(context.Background(), userID)
	require.NoError(t, err)
	var out []models.Notification
	for _, n := range list {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected a service error, got %v", err)
	require.Equal(t, kind, svcErr.Kind, "message: %s", svcErr.Message)
}
