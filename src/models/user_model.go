package models

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string      `json:"name" gorm:"not null"`
	Email       string      `json:"email" gorm:"uniqueIndex;not null"`
	Password    string      `json:"-" gorm:"not null"`
	Bio         *string     `json:"bio"`
	Avatar      *string     `json:"avatar"`
	IntentTags  []IntentTag `json:"-" gorm:"many2many:user_intent_tags;"`
	IsActive    bool        `json:"isActive" gorm:"not null"`
	IsPublic    bool        `json:"isPublic" gorm:"not null"`
	ProfileLink *string     `json:"profileLink" gorm:"uniqueIndex"`
	SearchText  string      `json:"-" gorm:"not null;default:''"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.RefreshSearchText()
	return nil
}

// RefreshSearchText recomputes the folded name/bio/email text discover matches against
func (u *User) RefreshSearchText() {
	parts := []string{u.Name, u.Email}
	if u.Bio != nil {
		parts = append(parts, *u.Bio)
	}
	u.SearchText = FoldSearch(strings.Join(parts, "\n"))
}

// FoldSearch lowercases s with Turkish dotted and dotless i folded to plain i
func FoldSearch(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'I', 'İ', 'ı':
			return 'i'
		}
		return unicode.ToLower(r)
	}, s)
}

// TagIDs returns the ids of the user's intent tags
func (u User) TagIDs() []string {
	ids := make([]string, 0, len(u.IntentTags))
	for _, tag := range u.IntentTags {
		ids = append(ids, tag.ID)
	}
	return ids
}

// UserDto is the account view of a user, without the password hash
type UserDto struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Bio         *string   `json:"bio"`
	Avatar      *string   `json:"avatar"`
	IntentTags  []string  `json:"intentTags"`
	IsActive    bool      `json:"isActive"`
	IsPublic    bool      `json:"isPublic"`
	ProfileLink *string   `json:"profileLink"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u User) ToDto() UserDto {
	return UserDto{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		IntentTags:  u.TagIDs(),
		IsActive:    u.IsActive,
		IsPublic:    u.IsPublic,
		ProfileLink: u.ProfileLink,
		CreatedAt:   u.CreatedAt,
	}
}

// UserSummary is embedded in connection, message and conversation payloads
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

func (u User) ToSummary() UserSummary {
	return UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}

// DiscoverUserDto is a discover result annotated with the viewer's connection state
type DiscoverUserDto struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Bio              *string   `json:"bio"`
	Avatar           *string   `json:"avatar"`
	IntentTags       []string  `json:"intentTags"`
	CreatedAt        time.Time `json:"createdAt"`
	ConnectionStatus string    `json:"connectionStatus"`
}
