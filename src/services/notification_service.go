package services

import (
	"context"

	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
)

const notificationListLimit = 50

type NotificationService interface {
	List(ctx context.Context, userID string) ([]models.Notification, int64, error)
	Update(ctx context.Context, userID string, in dto.NotificationUpdateRequest) error
	Delete(ctx context.Context, userID, notificationID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// List returns the 50 most recent notifications and the total unread count
func (s *notificationService) List(ctx context.Context, userID string) ([]models.Notification, int64, error) {
	notifications, err := s.repo.ListRecent(ctx, userID, notificationListLimit)
	if err != nil {
		return nil, 0, internalError(err)
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, internalError(err)
	}
	return notifications, unread, nil
}

// Update applies mark_read (for the given ids) or mark_all_read, scoped to the user's own rows
func (s *notificationService) Update(ctx context.Context, userID string, in dto.NotificationUpdateRequest) error {
	if err := validateStruct(in); err != nil {
		return err
	}

	var err error
	switch in.Action {
	case "mark_read":
		_, err = s.repo.MarkRead(ctx, userID, in.NotificationIDs)
	case "mark_all_read":
		_, err = s.repo.MarkAllRead(ctx, userID)
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID string) error {
	deleted, err := s.repo.Delete(ctx, userID, notificationID)
	if err != nil {
		return internalError(err)
	}
	if !deleted {
		return notFoundError(MsgNotificationNotFound)
	}
	return nil
}
