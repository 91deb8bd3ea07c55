package repository

import (
	"context"
	"time"

	"github.com/therive/therive-backend/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"
)

const notificationsCollection = "notifications"

type notificationDocument struct {
	ID        string                  `bson:"_id"`
	UserID    string                  `bson:"userId"`
	Type      models.NotificationType `bson:"type"`
	Title     string                  `bson:"title"`
	Content   string                  `bson:"content"`
	Data      string                  `bson:"data,omitempty"`
	IsRead    bool                    `bson:"isRead"`
	CreatedAt time.Time               `bson:"createdAt"`
}

func toNotificationDocument(n *models.Notification) notificationDocument {
	return notificationDocument{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Content:   n.Content,
		Data:      string(n.Data),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (d notificationDocument) toModel() models.Notification {
	n := models.Notification{
		ID:        d.ID,
		UserID:    d.UserID,
		Type:      d.Type,
		Title:     d.Title,
		Content:   d.Content,
		IsRead:    d.IsRead,
		CreatedAt: d.CreatedAt,
	}
	if d.Data != "" {
		n.Data = datatypes.JSON(d.Data)
	}
	return n
}

type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository stores notifications in a MongoDB collection instead of the SQL database
func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{collection: db.Collection(notificationsCollection)}
}

// EnsureNotificationIndexes creates the per-user listing index
func EnsureNotificationIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(notificationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *mongoNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := notification.BeforeCreate(nil); err != nil {
		return err
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, toNotificationDocument(notification))
	return translate(err)
}

func (r *mongoNotificationRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []notificationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(docs))
	for _, doc := range docs {
		notifications = append(notifications, doc.toModel())
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
}

func (r *mongoNotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"_id":    bson.M{"$in": ids},
		"userId": userID,
	}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *mongoNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	filter := bson.M{"userId": userID, "isRead": false}
	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *mongoNotificationRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}
