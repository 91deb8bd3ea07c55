package services

import (
	"context"
	"errors"
	"strings"

	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, in dto.SignupRequest) (*models.User, string, error)
	Authenticate(ctx context.Context, in dto.SigninRequest) (*models.User, string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error
}

type authService struct {
	users    repository.UserRepository
	tokens   *lib.TokenIssuer
	notifier Notifier
	cost     int
}

func NewAuthService(users repository.UserRepository, tokens *lib.TokenIssuer, notifier Notifier, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, tokens: tokens, notifier: notifier, cost: bcryptCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in dto.SignupRequest) (*models.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	tags, err := resolveIntentTags(ctx, s.users, in.SelectedTags)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", conflictError(MsgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", internalError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", internalError(err)
	}

	user := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Password:   string(hash),
		Bio:        optionalString(in.Bio),
		IntentTags: tags,
		IsActive:   true,
		IsPublic:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", conflictError(MsgEmailTaken)
		}
		return nil, "", internalError(err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", internalError(err)
	}
	return user, token, nil
}

// Authenticate answers unknown email and wrong password identically
func (s *authService) Authenticate(ctx context.Context, in dto.SigninRequest) (*models.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", authenticationError(MsgBadLogin)
		}
		return nil, "", internalError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, "", authenticationError(MsgBadLogin)
	}
	if !user.IsActive {
		return nil, "", forbiddenError(MsgAccountOff)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", internalError(err)
	}
	return user, token, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}
		return nil, internalError(err)
	}
	if !user.IsActive {
		return nil, forbiddenError(MsgAccountOff)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if err := validateStruct(in); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(MsgUserNotFound)
		}
		return internalError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		return validationError(MsgWrongPassword)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.NewPassword)) == nil {
		return validationError(MsgSamePassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.cost)
	if err != nil {
		return internalError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return internalError(err)
	}

	s.notifier.Notify(ctx, userID, models.NotificationTypePasswordChanged,
		"Şifre Değiştirildi", "Hesap şifreniz başarıyla değiştirildi.", nil)
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// resolveIntentTags loads catalog tags for ids, rejecting unknown ids
func resolveIntentTags(ctx context.Context, users repository.UserRepository, ids []string) ([]models.IntentTag, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	tags, err := users.FindIntentTags(ctx, unique)
	if err != nil {
		return nil, internalError(err)
	}
	if len(tags) != len(unique) {
		return nil, validationError(MsgUnknownTag)
	}
	return tags, nil
}
