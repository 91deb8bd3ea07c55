package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "PENDING"
	ConnectionStatusAccepted ConnectionStatus = "ACCEPTED"
	ConnectionStatusDeclined ConnectionStatus = "DECLINED"
	ConnectionStatusBlocked  ConnectionStatus = "BLOCKED"
)

// Connection is the single relationship row for an unordered pair of users
type Connection struct {
	ID                  string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	InitiatorID         string           `json:"initiatorId" gorm:"index;not null;type:varchar(36)"`
	ReceiverID          string           `json:"receiverId" gorm:"index;not null;type:varchar(36)"`
	PairKey             string           `json:"-" gorm:"uniqueIndex;not null;type:varchar(80)"`
	Status              ConnectionStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ConnectionMessage   *string          `json:"connectionMessage"`
	InitiatorSharedInfo bool             `json:"initiatorSharedInfo" gorm:"not null"`
	ReceiverSharedInfo  bool             `json:"receiverSharedInfo" gorm:"not null"`
	Initiator           User             `json:"-" gorm:"foreignKey:InitiatorID"`
	Receiver            User             `json:"-" gorm:"foreignKey:ReceiverID"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// PairKeyFor orders the two ids so (a, b) and (b, a) share one key
func PairKeyFor(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.PairKey = PairKeyFor(c.InitiatorID, c.ReceiverID)
	return nil
}

func (c Connection) HasParty(userID string) bool {
	return c.InitiatorID == userID || c.ReceiverID == userID
}

// OtherParty returns the counterpart of userID in the pair
func (c Connection) OtherParty(userID string) string {
	if c.InitiatorID == userID {
		return c.ReceiverID
	}
	return c.InitiatorID
}

func (c Connection) OtherUser(userID string) User {
	if c.InitiatorID == userID {
		return c.Receiver
	}
	return c.Initiator
}

// FullyShared reports whether both parties opted into info sharing
func (c Connection) FullyShared() bool {
	return c.InitiatorSharedInfo && c.ReceiverSharedInfo
}

type ConnectionDto struct {
	ID                string           `json:"id"`
	Status            ConnectionStatus `json:"status"`
	ConnectionMessage *string          `json:"connectionMessage"`
	Direction         string           `json:"direction"`
	User              UserSummary      `json:"user"`
	InfoShared        bool             `json:"infoShared"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// ToDto renders the connection from viewerID's side; parties must be preloaded
func (c Connection) ToDto(viewerID string) ConnectionDto {
	direction := "incoming"
	if c.InitiatorID == viewerID {
		direction = "outgoing"
	}
	return ConnectionDto{
		ID:                c.ID,
		Status:            c.Status,
		ConnectionMessage: c.ConnectionMessage,
		Direction:         direction,
		User:              c.OtherUser(viewerID).ToSummary(),
		InfoShared:        c.FullyShared(),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
