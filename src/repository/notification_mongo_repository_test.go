package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/therive/therive-backend/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoNotificationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns an id", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		n := &models.Notification{UserID: "u1", Type: models.NotificationTypeProfileUpdated, Title: "Profil Güncellendi", Content: "ok"}
		require.NoError(t, repo.Create(ctx, n))
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.CreatedAt.IsZero())
	})

	mt.Run("list decodes documents", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		ns := mt.Coll.Database().Name() + "." + notificationsCollection
		createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "n1"},
				{Key: "userId", Value: "u1"},
				{Key: "type", Value: "NEW_MESSAGE"},
				{Key: "title", Value: "Yeni Mesaj"},
				{Key: "content", Value: "Merhaba"},
				{Key: "data", Value: `{"connectionId":"c1"}`},
				{Key: "isRead", Value: false},
				{Key: "createdAt", Value: createdAt},
			}),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		list, err := repo.ListRecent(ctx, "u1", 50)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "n1", list[0].ID)
		assert.Equal(t, models.NotificationTypeNewMessage, list[0].Type)
		assert.JSONEq(t, `{"connectionId":"c1"}`, string(list[0].Data))
	})

	mt.Run("mark all read reports modified count", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 3}, {Key: "nModified", Value: 3}})

		modified, err := repo.MarkAllRead(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), modified)
	})

	mt.Run("delete reports whether a document matched", func(mt *mtest.T) {
		repo := NewMongoNotificationRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		deleted, err := repo.Delete(ctx, "u1", "someone-elses")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
