package lib

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/therive/therive-backend/src/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the database selected by DB_DRIVER
func ConnectDB(cfg config.Config) (*gorm.DB, error) {
	dsn := cfg.DBPath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseDSN
	}

	db, err := OpenDatabase(cfg.DBDriver, dsn, ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, err
	}

	log.Printf("Connected to %s!", cfg.DBDriver)
	return db, nil
}

// OpenDatabase opens a gorm handle for "sqlite" or "postgres".
// Duplicate-key violations surface as gorm.ErrDuplicatedKey.
func OpenDatabase(driver, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for postgres")
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver != "postgres" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
