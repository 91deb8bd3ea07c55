package repository

import (
	"context"
	"strings"

	"github.com/therive/therive-backend/src/models"
	"gorm.io/gorm"
)

// DiscoverFilter narrows the discover listing. Tags match when the user holds any of them.
type DiscoverFilter struct {
	ExcludeID string
	Query     string
	Tags      []string
	Offset    int
	Limit     int
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByProfileLink(ctx context.Context, link string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	Discover(ctx context.Context, filter DiscoverFilter) ([]models.User, int64, error)
	FindIntentTags(ctx context.Context, ids []string) ([]models.IntentTag, error)
	ListIntentTags(ctx context.Context) ([]models.IntentTag, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("IntentTags").Where("id = ?", id).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("IntentTags").Where("email = ?", email).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByProfileLink(ctx context.Context, link string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("profile_link = ?", link).Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateProfile writes the editable profile fields and replaces the tag set in one transaction
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.RefreshSearchText()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(user).
			Select("Name", "Bio", "IsPublic", "ProfileLink", "SearchText", "UpdatedAt").
			Updates(user).Error
		if err != nil {
			return err
		}

		association := tx.Model(user).Association("IntentTags")
		if len(user.IntentTags) == 0 {
			return association.Clear()
		}
		return association.Replace(user.IntentTags)
	})
	return translate(err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("avatar", avatarURL)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func discoverScope(filter DiscoverFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("users.id <> ? AND users.is_active = ? AND users.is_public = ?", filter.ExcludeID, true, true)

		if q := models.FoldSearch(strings.TrimSpace(filter.Query)); q != "" {
			db = db.Where(`users.search_text LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(q)+"%")
		}

		if len(filter.Tags) > 0 {
			db = db.Where(
				"EXISTS (SELECT 1 FROM user_intent_tags uit WHERE uit.user_id = users.id AND uit.intent_tag_id IN ?)",
				filter.Tags,
			)
		}
		return db
	}
}

// Discover returns one page of matching users, newest first, plus the total match count
func (r *userRepository) Discover(ctx context.Context, filter DiscoverFilter) ([]models.User, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(discoverScope(filter)).Count(&total).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	var users []models.User
	if total == 0 {
		return users, 0, nil
	}

	err = r.db.WithContext(ctx).
		Scopes(discoverScope(filter)).
		Preload("IntentTags").
		Order("users.created_at DESC").
		Order("users.id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return users, total, nil
}

func (r *userRepository) FindIntentTags(ctx context.Context, ids []string) ([]models.IntentTag, error) {
	var tags []models.IntentTag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, translate(err)
}

func (r *userRepository) ListIntentTags(ctx context.Context) ([]models.IntentTag, error) {
	var tags []models.IntentTag
	err := r.db.WithContext(ctx).Order("id").Find(&tags).Error
	return tags, translate(err)
}
