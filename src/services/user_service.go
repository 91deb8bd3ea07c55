package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxAvatarSize   = 5 << 20
)

var avatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AvatarUploader stores an image and returns its public URL
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, userID string, content io.Reader) (string, error)
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type DiscoverResult struct {
	Users      []models.DiscoverUserDto `json:"users"`
	Pagination Pagination               `json:"pagination"`
}

// PublicProfile is another user's profile as the viewer is allowed to see it
type PublicProfile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            *string   `json:"email,omitempty"`
	Bio              *string   `json:"bio"`
	Avatar           *string   `json:"avatar"`
	IntentTags       []string  `json:"intentTags"`
	ProfileLink      *string   `json:"profileLink"`
	CreatedAt        time.Time `json:"createdAt"`
	ConnectionStatus string    `json:"connectionStatus"`
	ConnectionID     *string   `json:"connectionId,omitempty"`
}

type UserService interface {
	UpdateProfile(ctx context.Context, userID string, in dto.ProfileUpdateRequest) (*models.User, error)
	Discover(ctx context.Context, viewerID string, q dto.DiscoverQuery) (*DiscoverResult, error)
	PublicProfile(ctx context.Context, viewerID, userID string) (*PublicProfile, error)
	ListIntentTags(ctx context.Context) ([]models.IntentTag, error)
	UploadAvatar(ctx context.Context, userID, filename string, size int64, content io.Reader) (*models.User, error)
}

type userService struct {
	users       repository.UserRepository
	connections repository.ConnectionRepository
	notifier    Notifier
	uploader    AvatarUploader
}

// NewUserService builds the user directory. uploader may be nil when no media store is configured.
func NewUserService(users repository.UserRepository, connections repository.ConnectionRepository, notifier Notifier, uploader AvatarUploader) UserService {
	return &userService{users: users, connections: connections, notifier: notifier, uploader: uploader}
}

func (s *userService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}
		return nil, internalError(err)
	}
	return user, nil
}

// UpdateProfile applies the request. Omitted bio, tags and link stay as they are; empty strings clear them.
func (s *userService) UpdateProfile(ctx context.Context, userID string, in dto.ProfileUpdateRequest) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		in.Bio = &bio
	}
	if in.ProfileLink != nil {
		link := strings.TrimSpace(*in.ProfileLink)
		in.ProfileLink = &link
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.IntentTags != nil {
		tags, err := resolveIntentTags(ctx, s.users, in.IntentTags)
		if err != nil {
			return nil, err
		}
		user.IntentTags = tags
	}

	if in.ProfileLink != nil && *in.ProfileLink != "" {
		owner, err := s.users.FindByProfileLink(ctx, *in.ProfileLink)
		if err == nil && owner.ID != userID {
			return nil, validationError(MsgProfileLinkTaken)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, internalError(err)
		}
	}

	user.Name = in.Name
	if in.Bio != nil {
		user.Bio = optionalString(*in.Bio)
	}
	if in.ProfileLink != nil {
		user.ProfileLink = optionalString(*in.ProfileLink)
	}
	user.IsPublic = true
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validationError(MsgProfileLinkTaken)
		}
		return nil, internalError(err)
	}

	s.notifier.Notify(ctx, userID, models.NotificationTypeProfileUpdated,
		"Profil Güncellendi", "Profil bilgileriniz başarıyla güncellendi.", nil)

	return s.loadUser(ctx, userID)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func (s *userService) Discover(ctx context.Context, viewerID string, q dto.DiscoverQuery) (*DiscoverResult, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	tags := make([]string, 0, len(q.Tags))
	for _, tag := range q.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	users, total, err := s.users.Discover(ctx, repository.DiscoverFilter{
		ExcludeID: viewerID,
		Query:     q.Query,
		Tags:      tags,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	})
	if err != nil {
		return nil, internalError(err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	conns, err := s.connections.FindForUserAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, internalError(err)
	}
	byOther := make(map[string]*models.Connection, len(conns))
	for i := range conns {
		byOther[conns[i].OtherParty(viewerID)] = &conns[i]
	}

	items := make([]models.DiscoverUserDto, 0, len(users))
	for _, u := range users {
		items = append(items, models.DiscoverUserDto{
			ID:               u.ID,
			Name:             u.Name,
			Email:            u.Email,
			Bio:              u.Bio,
			Avatar:           u.Avatar,
			IntentTags:       u.TagIDs(),
			CreatedAt:        u.CreatedAt,
			ConnectionStatus: connectionStatusFor(viewerID, byOther[u.ID]),
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &DiscoverResult{
		Users: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// PublicProfile hides inactive users and private users the viewer is not connected to.
// Email is only revealed once both sides of an accepted connection shared their info.
func (s *userService) PublicProfile(ctx context.Context, viewerID, userID string) (*PublicProfile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &PublicProfile{
		ID:          user.ID,
		Name:        user.Name,
		Bio:         user.Bio,
		Avatar:      user.Avatar,
		IntentTags:  user.TagIDs(),
		ProfileLink: user.ProfileLink,
		CreatedAt:   user.CreatedAt,
	}

	if viewerID == userID {
		profile.ConnectionStatus = StatusSelf
		profile.Email = &user.Email
		return profile, nil
	}

	conn, err := s.connections.FindByPair(ctx, viewerID, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, internalError(err)
	}
	if err != nil {
		conn = nil
	}

	status := connectionStatusFor(viewerID, conn)
	if !user.IsActive || status == StatusBlocked || (!user.IsPublic && status != StatusConnected) {
		return nil, notFoundError(MsgUserNotFound)
	}

	profile.ConnectionStatus = status
	if conn != nil {
		profile.ConnectionID = &conn.ID
		if status == StatusConnected && conn.FullyShared() {
			profile.Email = &user.Email
		}
	}
	return profile, nil
}

func (s *userService) ListIntentTags(ctx context.Context) ([]models.IntentTag, error) {
	tags, err := s.users.ListIntentTags(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return tags, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID, filename string, size int64, content io.Reader) (*models.User, error) {
	if s.uploader == nil {
		return nil, unavailableError(MsgAvatarUnavailable)
	}
	if !avatarExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, validationError(MsgAvatarType)
	}
	if size <= 0 {
		return nil, validationError(MsgInvalidInput)
	}
	if size > maxAvatarSize {
		return nil, validationError(MsgAvatarSize)
	}

	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	url, err := s.uploader.UploadAvatar(ctx, userID, content)
	if err != nil {
		return nil, internalError(err)
	}
	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, internalError(err)
	}
	return s.loadUser(ctx, userID)
}
