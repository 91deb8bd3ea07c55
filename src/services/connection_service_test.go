package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
)

func ptr[T any](v T) *T { return &v }

func TestRequestConnectionIsUnorderedPerPair(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")

	conn, err := e.connections.RequestConnection(ctx, bob.ID, dto.ConnectionRequest{
		ReceiverID: alice.ID,
		Message:    ptr("  Merhaba, tanışalım  "),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)
	assert.False(t, conn.InitiatorSharedInfo)
	assert.False(t, conn.ReceiverSharedInfo)
	require.NotNil(t, conn.ConnectionMessage)
	assert.Equal(t, "Merhaba, tanışalım", *conn.ConnectionMessage)

	_, err = e.connections.RequestConnection(ctx, bob.ID, dto.ConnectionRequest{ReceiverID: alice.ID})
	requireKind(t, err, KindConflict)
	_, err = e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{ReceiverID: bob.ID})
	requireKind(t, err, KindConflict)

	requests := e.notificationsOf(t, alice.ID, models.NotificationTypeNewConnectionRequest)
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0].Content, "Bob")
	assert.Contains(t, string(requests[0].Data), conn.ID)
}

func TestRequestConnectionValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")

	_, err := e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{ReceiverID: alice.ID})
	requireKind(t, err, KindValidation)

	_, err = e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{
		ReceiverID: bob.ID,
		Message:    ptr(strings.Repeat("x", 301)),
	})
	requireKind(t, err, KindValidation)

	_, err = e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{ReceiverID: "ghost"})
	requireKind(t, err, KindNotFound)

	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", bob.ID).Update("is_active", false).Error)
	_, err = e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{ReceiverID: bob.ID})
	requireKind(t, err, KindNotFound)
}

func TestConcurrentRequestsLeaveOneRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := alice, bob
			if i%2 == 1 {
				from, to = bob, alice
			}
			_, errs[i] = e.connections.RequestConnection(ctx, from.ID, dto.ConnectionRequest{ReceiverID: to.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireKind(t, err, KindConflict)
	}
	assert.Equal(t, 1, succeeded)

	var rows int64
	require.NoError(t, e.db.Model(&models.Connection{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRespondToConnection(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")
	carol := e.signup(t, "Carol", "c@x.com")

	conn, err := e.connections.RequestConnection(ctx, bob.ID, dto.ConnectionRequest{ReceiverID: alice.ID})
	require.NoError(t, err)

	accept := dto.ConnectionResponseRequest{Action: "accept"}

	_, err = e.connections.RespondToConnection(ctx, conn.ID, bob.ID, accept)
	requireKind(t, err, KindNotFound)
	_, err = e.connections.RespondToConnection(ctx, conn.ID, carol.ID, accept)
	requireKind(t, err, KindNotFound)
	_, err = e.connections.RespondToConnection(ctx, "missing", alice.ID, accept)
	requireKind(t, err, KindNotFound)
	_, err = e.connections.RespondToConnection(ctx, conn.ID, alice.ID, dto.ConnectionResponseRequest{Action: "maybe"})
	requireKind(t, err, KindValidation)

	accepted, err := e.connections.RespondToConnection(ctx, conn.ID, alice.ID, accept)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, accepted.Status)

	_, err = e.connections.RespondToConnection(ctx, conn.ID, alice.ID, dto.ConnectionResponseRequest{Action: "decline"})
	requireKind(t, err, KindNotFound)

	assert.Len(t, e.notificationsOf(t, bob.ID, models.NotificationTypeConnectionAccepted), 1)

	status, _, err := e.connections.ConnectionStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConnected, status)
}

func TestDeclinedPairCanBeRequestedAgain(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")

	conn, err := e.connections.RequestConnection(ctx, bob.ID, dto.ConnectionRequest{ReceiverID: alice.ID})
	require.NoError(t, err)
	_, err = e.connections.RespondToConnection(ctx, conn.ID, alice.ID, dto.ConnectionResponseRequest{Action: "decline"})
	require.NoError(t, err)

	status, _, err := e.connections.ConnectionStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNone, status)

	reopened, err := e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{ReceiverID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, conn.ID, reopened.ID)
	assert.Equal(t, alice.ID, reopened.InitiatorID)
	assert.Equal(t, bob.ID, reopened.ReceiverID)
	assert.Equal(t, models.ConnectionStatusPending, reopened.Status)

	status, _, err = e.connections.ConnectionStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingReceived, status)
}

func TestAuthorizeMessaging(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")
	carol := e.signup(t, "Carol", "c@x.com")

	pending, err := e.connections.RequestConnection(ctx, carol.ID, dto.ConnectionRequest{ReceiverID: alice.ID})
	require.NoError(t, err)
	_, err = e.connections.AuthorizeMessaging(ctx, pending.ID, carol.ID)
	requireKind(t, err, KindNotFound)

	conn := e.connect(t, alice, bob)

	for _, actor := range []*models.User{alice, bob} {
		got, err := e.connections.AuthorizeMessaging(ctx, conn.ID, actor.ID)
		require.NoError(t, err)
		assert.Equal(t, conn.ID, got.ID)
	}

	_, err = e.connections.AuthorizeMessaging(ctx, conn.ID, carol.ID)
	requireKind(t, err, KindNotFound)
	_, err = e.connections.AuthorizeMessaging(ctx, "missing", alice.ID)
	requireKind(t, err, KindNotFound)
}

func TestBlockConnection(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")
	carol := e.signup(t, "Carol", "c@x.com")
	conn := e.connect(t, alice, bob)

	_, err := e.connections.BlockConnection(ctx, conn.ID, carol.ID)
	requireKind(t, err, KindNotFound)

	blocked, err := e.connections.BlockConnection(ctx, conn.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusBlocked, blocked.Status)

	_, err = e.connections.AuthorizeMessaging(ctx, conn.ID, alice.ID)
	requireKind(t, err, KindNotFound)
	_, err = e.messages.SendMessage(ctx, conn.ID, alice.ID, dto.SendMessageRequest{Content: "hey"})
	requireKind(t, err, KindNotFound)

	_, err = e.connections.RequestConnection(ctx, alice.ID, dto.ConnectionRequest{ReceiverID: bob.ID})
	requireKind(t, err, KindNotFound)

	status, _, err := e.connections.ConnectionStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, status)
}

func TestSetInfoSharing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")
	carol := e.signup(t, "Carol", "c@x.com")
	conn := e.connect(t, alice, bob)

	_, err := e.connections.SetInfoSharing(ctx, conn.ID, carol.ID, true)
	requireKind(t, err, KindNotFound)

	updated, err := e.connections.SetInfoSharing(ctx, conn.ID, bob.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.ReceiverSharedInfo)
	assert.False(t, updated.InitiatorSharedInfo)
	assert.False(t, updated.FullyShared())

	updated, err = e.connections.SetInfoSharing(ctx, conn.ID, bob.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.ReceiverSharedInfo)

	updated, err = e.connections.SetInfoSharing(ctx, conn.ID, alice.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.FullyShared())

	_, messages, err := e.messages.ListThread(ctx, conn.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2, "one INFO_SHARED message per side, not per call")
	for _, m := range messages {
		assert.Equal(t, models.MessageTypeInfoShared, m.Type)
	}

	updated, err = e.connections.SetInfoSharing(ctx, conn.ID, alice.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.InitiatorSharedInfo)
	assert.True(t, updated.ReceiverSharedInfo)
	assert.False(t, updated.FullyShared())
}

func TestListConnections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "Alice", "a@x.com")
	bob := e.signup(t, "Bob", "b@x.com")
	carol := e.signup(t, "Carol", "c@x.com")

	e.connect(t, alice, bob)
	_, err := e.connections.RequestConnection(ctx, carol.ID, dto.ConnectionRequest{ReceiverID: alice.ID})
	require.NoError(t, err)

	all, err := e.connections.ListConnections(ctx, alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := e.connections.ListConnections(ctx, alice.ID, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	view := pending[0].ToDto(alice.ID)
	assert.Equal(t, "incoming", view.Direction)
	assert.Equal(t, "Carol", view.User.Name)

	_, err = e.connections.ListConnections(ctx, alice.ID, "friends")
	requireKind(t, err, KindValidation)
}
