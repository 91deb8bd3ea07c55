package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/therive/therive-backend/src/lib"
	"github.com/therive/therive-backend/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := lib.OpenDatabase("sqlite", dsn, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, lib.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts an active public user with the given name and email
func CreateUser(t *testing.T, db *gorm.DB, name, email string, tags ...string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		IsActive: true,
		IsPublic: true,
	}
	for _, tag := range tags {
		user.IntentTags = append(user.IntentTags, models.IntentTag{ID: tag})
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
