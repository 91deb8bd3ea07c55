package repository

import (
	"context"

	"github.com/therive/therive-backend/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	FindByID(ctx context.Context, id string) (*models.Connection, error)
	FindByPair(ctx context.Context, userA, userB string) (*models.Connection, error)
	FindForUserAmong(ctx context.Context, userID string, otherIDs []string) ([]models.Connection, error)
	ListForUser(ctx context.Context, userID string, statuses ...models.ConnectionStatus) ([]models.Connection, error)
	TransitionStatus(ctx context.Context, id string, from []models.ConnectionStatus, to models.ConnectionStatus) (bool, error)
	Reopen(ctx context.Context, id, initiatorID, receiverID string, message *string) (bool, error)
	SetSharedInfo(ctx context.Context, id string, initiatorSide, shared bool) (bool, error)
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// Create inserts a new pair row; a second row for the same pair fails with ErrDuplicate
func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(conn).Error)
}

// FindByID loads the connection with both parties
func (r *connectionRepository) FindByID(ctx context.Context, id string) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).
		Preload("Initiator").
		Preload("Receiver").
		Where("id = ?", id).
		Take(&conn).Error
	if err != nil {
		return nil, translate(err)
	}
	return &conn, nil
}

func (r *connectionRepository) FindByPair(ctx context.Context, userA, userB string) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).Where("pair_key = ?", models.PairKeyFor(userA, userB)).Take(&conn).Error
	if err != nil {
		return nil, translate(err)
	}
	return &conn, nil
}

// FindForUserAmong returns the rows linking userID to any of otherIDs
func (r *connectionRepository) FindForUserAmong(ctx context.Context, userID string, otherIDs []string) ([]models.Connection, error) {
	var conns []models.Connection
	if len(otherIDs) == 0 {
		return conns, nil
	}
	keys := make([]string, 0, len(otherIDs))
	for _, other := range otherIDs {
		keys = append(keys, models.PairKeyFor(userID, other))
	}
	err := r.db.WithContext(ctx).Where("pair_key IN ?", keys).Find(&conns).Error
	return conns, translate(err)
}

// ListForUser returns the user's connections in the given statuses, newest activity first
func (r *connectionRepository) ListForUser(ctx context.Context, userID string, statuses ...models.ConnectionStatus) ([]models.Connection, error) {
	var conns []models.Connection
	query := r.db.WithContext(ctx).
		Preload("Initiator").
		Preload("Receiver").
		Where("(initiator_id = ? OR receiver_id = ?)", userID, userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("updated_at DESC").Find(&conns).Error
	return conns, translate(err)
}

// TransitionStatus moves the row to `to` only while it is still in one of `from`.
// It reports false when another writer got there first.
func (r *connectionRepository) TransitionStatus(ctx context.Context, id string, from []models.ConnectionStatus, to models.ConnectionStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Reopen turns a DECLINED row back into a fresh PENDING request from initiatorID
func (r *connectionRepository) Reopen(ctx context.Context, id, initiatorID, receiverID string, message *string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND status = ?", id, models.ConnectionStatusDeclined).
		Updates(map[string]interface{}{
			"initiator_id":          initiatorID,
			"receiver_id":           receiverID,
			"status":                models.ConnectionStatusPending,
			"connection_message":    message,
			"initiator_shared_info": false,
			"receiver_shared_info":  false,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// SetSharedInfo sets one side's info-sharing flag on an ACCEPTED connection
func (r *connectionRepository) SetSharedInfo(ctx context.Context, id string, initiatorSide, shared bool) (bool, error) {
	column := "receiver_shared_info"
	if initiatorSide {
		column = "initiator_shared_info"
	}
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ? AND status = ?", id, models.ConnectionStatusAccepted).
		Update(column, shared)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}
