package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/testutil"
)

func TestConnectionRepositoryOneRowPerPair(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "A", "a@example.com")
	b := testutil.CreateUser(t, db, "B", "b@example.com")

	conn := &models.Connection{InitiatorID: a.ID, ReceiverID: b.ID, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, conn))
	assert.Equal(t, models.PairKeyFor(a.ID, b.ID), conn.PairKey)

	reverse := &models.Connection{InitiatorID: b.ID, ReceiverID: a.ID, Status: models.ConnectionStatusPending}
	assert.ErrorIs(t, repo.Create(ctx, reverse), ErrDuplicate)

	found, err := repo.FindByPair(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, conn.ID, found.ID)
}

func TestConnectionRepositoryTransitions(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "A", "a@example.com")
	b := testutil.CreateUser(t, db, "B", "b@example.com")
	conn := &models.Connection{InitiatorID: a.ID, ReceiverID: b.ID, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, conn))

	pending := []models.ConnectionStatus{models.ConnectionStatusPending}
	ok, err := repo.TransitionStatus(ctx, conn.ID, pending, models.ConnectionStatusDeclined)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, conn.ID, pending, models.ConnectionStatusAccepted)
	require.NoError(t, err)
	assert.False(t, ok, "a decided request cannot be decided again")

	message := "Tekrar merhaba"
	ok, err = repo.Reopen(ctx, conn.ID, b.ID, a.ID, &message)
	require.NoError(t, err)
	assert.True(t, ok)

	reopened, err := repo.FindByID(ctx, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusPending, reopened.Status)
	assert.Equal(t, b.ID, reopened.InitiatorID)
	assert.Equal(t, a.ID, reopened.ReceiverID)
	assert.Equal(t, "B", reopened.Initiator.Name)
	require.NotNil(t, reopened.ConnectionMessage)
	assert.Equal(t, message, *reopened.ConnectionMessage)

	ok, err = repo.Reopen(ctx, conn.ID, b.ID, a.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok, "only declined rows can be reopened")
}

func TestConnectionRepositorySharedInfoAndListing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "A", "a@example.com")
	b := testutil.CreateUser(t, db, "B", "b@example.com")
	c := testutil.CreateUser(t, db, "C", "c@example.com")

	ab := &models.Connection{InitiatorID: a.ID, ReceiverID: b.ID, Status: models.ConnectionStatusAccepted}
	ca := &models.Connection{InitiatorID: c.ID, ReceiverID: a.ID, Status: models.ConnectionStatusPending}
	require.NoError(t, repo.Create(ctx, ab))
	require.NoError(t, repo.Create(ctx, ca))

	ok, err := repo.SetSharedInfo(ctx, ca.ID, true, true)
	require.NoError(t, err)
	assert.False(t, ok, "pending connections cannot share info")

	ok, err = repo.SetSharedInfo(ctx, ab.ID, false, true)
	require.NoError(t, err)
	assert.True(t, ok)

	accepted, err := repo.ListForUser(ctx, a.ID, models.ConnectionStatusAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.True(t, accepted[0].ReceiverSharedInfo)
	assert.False(t, accepted[0].FullyShared())
	assert.Equal(t, "B", accepted[0].OtherUser(a.ID).Name)

	all, err := repo.ListForUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	among, err := repo.FindForUserAmong(ctx, a.ID, []string{b.ID, c.ID, "stranger"})
	require.NoError(t, err)
	assert.Len(t, among, 2)
}
