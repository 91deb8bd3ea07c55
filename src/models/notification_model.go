package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeProfileUpdated       NotificationType = "PROFILE_UPDATED"
	NotificationTypePasswordChanged      NotificationType = "PASSWORD_CHANGED"
	NotificationTypeNewConnectionRequest NotificationType = "NEW_CONNECTION_REQUEST"
	NotificationTypeConnectionAccepted   NotificationType = "CONNECTION_ACCEPTED"
	NotificationTypeNewMessage           NotificationType = "NEW_MESSAGE"
	NotificationTypeSystemAnnouncement   NotificationType = "SYSTEM_ANNOUNCEMENT"
)

type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string           `json:"userId" gorm:"index;not null;type:varchar(36)"`
	Type      NotificationType `json:"type" gorm:"type:varchar(40);not null"`
	Title     string           `json:"title" gorm:"not null"`
	Content   string           `json:"content" gorm:"type:text;not null"`
	Data      datatypes.JSON   `json:"data"`
	IsRead    bool             `json:"isRead" gorm:"not null;index"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
