package lib

import (
	"fmt"
	"log"

	"github.com/therive/therive-backend/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate runs all database migrations and seeds the intent tag catalog
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.IntentTag{},
		&models.User{},
		&models.Connection{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := SeedIntentTags(db); err != nil {
		return err
	}

	if err := backfillSearchText(db); err != nil {
		return err
	}

	log.Println("Database migration completed!")
	return nil
}

// SeedIntentTags inserts the catalog tags that are missing, leaving existing rows alone
func SeedIntentTags(db *gorm.DB) error {
	tags := models.DefaultIntentTags()
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
	if err != nil {
		return fmt.Errorf("failed to seed intent tags: %w", err)
	}
	return nil
}

// backfillSearchText fills the discover search column for rows created before it existed
func backfillSearchText(db *gorm.DB) error {
	var users []models.User
	result := db.Where("search_text = ?", "").FindInBatches(&users, 200, func(tx *gorm.DB, batch int) error {
		for i := range users {
			users[i].RefreshSearchText()
			err := tx.Model(&models.User{}).Where("id = ?", users[i].ID).Update("search_text", users[i].SearchText).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if result.Error != nil {
		return fmt.Errorf("failed to backfill search text: %w", result.Error)
	}
	return nil
}
