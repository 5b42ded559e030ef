package migration

import (
	"fmt"

	"foodloss-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Models lists every table in dependency order: owners before the rows that cascade from them.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Store{},
		&entities.Category{},
		&entities.Food{},
		&entities.FoodTag{},
		&entities.Order{},
		&entities.CartItem{},
		&entities.RevokedToken{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrating %T: %w", model, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
