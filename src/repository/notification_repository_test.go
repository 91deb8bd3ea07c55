package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/testutil"
	"gorm.io/datatypes"
)

func TestNotificationRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com")
	other := testutil.CreateUser(t, db, "Other", "other@example.com")

	var ids []string
	for i := 0; i < 3; i++ {
		n := &models.Notification{
			UserID:  owner.ID,
			Type:    models.NotificationTypeNewConnectionRequest,
			Title:   "Yeni Bağlantı İsteği",
			Content: "Biri sizinle bağlantı kurmak istiyor",
			Data:    datatypes.JSON(`{"connectionId":"c1"}`),
		}
		require.NoError(t, repo.Create(ctx, n))
		ids = append(ids, n.ID)
		time.Sleep(2 * time.Millisecond)
	}
	foreign := &models.Notification{UserID: other.ID, Type: models.NotificationTypeSystemAnnouncement, Title: "t", Content: "c"}
	require.NoError(t, repo.Create(ctx, foreign))

	list, err := repo.ListRecent(ctx, owner.ID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.JSONEq(t, `{"connectionId":"c1"}`, string(list[0].Data))

	unread, err := repo.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	marked, err := repo.MarkRead(ctx, owner.ID, []string{ids[0], foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked, "foreign ids are ignored")

	marked, err = repo.MarkAllRead(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	deleted, err := repo.Delete(ctx, owner.ID, foreign.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, owner.ID, ids[0])
	require.NoError(t, err)
	assert.True(t, deleted)

	unread, err = repo.CountUnread(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
