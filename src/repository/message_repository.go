package repository

import (
	"context"

	"github.com/therive/therive-backend/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByConnection(ctx context.Context, connectionID string) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, connectionID, readerID string) (int64, error)
	LastMessage(ctx context.Context, connectionID string) (*models.Message, error)
	UnreadCounts(ctx context.Context, readerID string, connectionIDs []string) (map[string]int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(msg).Error)
}

// ListByConnection returns the thread oldest first, with senders preloaded
func (r *messageRepository) ListByConnection(ctx context.Context, connectionID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("connection_id = ?", connectionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	return messages, translate(err)
}

// MarkThreadRead flags every unread message addressed to readerID in the thread
func (r *messageRepository) MarkThreadRead(ctx context.Context, connectionID, readerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("connection_id = ? AND receiver_id = ? AND is_read = ?", connectionID, readerID, false).
		Update("is_read", true)
	return result.RowsAffected, translate(result.Error)
}

func (r *messageRepository) LastMessage(ctx context.Context, connectionID string) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("connection_id = ?", connectionID).
		Order("created_at DESC").
		Order("id DESC").
		Take(&msg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

type unreadRow struct {
	ConnectionID string
	Count        int64
}

// UnreadCounts returns unread message counts addressed to readerID, keyed by connection
func (r *messageRepository) UnreadCounts(ctx context.Context, readerID string, connectionIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(connectionIDs))
	if len(connectionIDs) == 0 {
		return counts, nil
	}

	var rows []unreadRow
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("connection_id, COUNT(*) AS count").
		Where("connection_id IN ? AND receiver_id = ? AND is_read = ?", connectionIDs, readerID, false).
		Group("connection_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	for _, row := range rows {
		counts[row.ConnectionID] = row.Count
	}
	return counts, nil
}
