package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageTypeText             MessageType = "TEXT"
	MessageTypeInfoShareRequest MessageType = "INFO_SHARE_REQUEST"
	MessageTypeInfoShared       MessageType = "INFO_SHARED"
)

type Message struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ConnectionID string      `json:"connectionId" gorm:"index;not null;type:varchar(36)"`
	SenderID     string      `json:"senderId" gorm:"index;not null;type:varchar(36)"`
	ReceiverID   string      `json:"receiverId" gorm:"index;not null;type:varchar(36)"`
	Content      string      `json:"content" gorm:"type:text;not null"`
	Type         MessageType `json:"type" gorm:"type:varchar(32);not null"`
	IsRead       bool        `json:"isRead" gorm:"not null;index"`
	Sender       User        `json:"-" gorm:"foreignKey:SenderID"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Type == "" {
		m.Type = MessageTypeText
	}
	return nil
}

type MessageDto struct {
	ID           string      `json:"id"`
	ConnectionID string      `json:"connectionId"`
	SenderID     string      `json:"senderId"`
	ReceiverID   string      `json:"receiverId"`
	Content      string      `json:"content"`
	Type         MessageType `json:"type"`
	IsRead       bool        `json:"isRead"`
	Sender       UserSummary `json:"sender"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ToDto expects Sender to be preloaded
func (m Message) ToDto() MessageDto {
	return MessageDto{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		SenderID:     m.SenderID,
		ReceiverID:   m.ReceiverID,
		Content:      m.Content,
		Type:         m.Type,
		IsRead:       m.IsRead,
		Sender:       m.Sender.ToSummary(),
		CreatedAt:    m.CreatedAt,
	}
}

type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsFromMe  bool      `json:"isFromMe"`
}

// Conversation is one entry of the inbox, built per accepted connection
type Conversation struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Avatar      *string      `json:"avatar"`
	IsOnline    bool         `json:"isOnline"`
	LastMessage *LastMessage `json:"lastMessage"`
	UnreadCount int64        `json:"unreadCount"`
	InfoShared  bool         `json:"infoShared"`
	ConnectedAt time.Time    `json:"connectedAt"`
}
