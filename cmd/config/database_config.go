package config

import (
	"fmt"
	"strings"
	"time"

	"foodloss-backend/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector() (gorm.Dialector, error) {
	switch driver := strings.ToLower(utils.GetConfig("DB_DRIVER")); driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(utils.GetConfig("DB_SQLITE_PATH") + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func ConnectDB() (*gorm.DB, error) {
	d, err := dialector()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if utils.GetConfig("APP_ENV") == "development" {
		level = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
