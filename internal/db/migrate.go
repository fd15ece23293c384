package db

import (
	"fmt"

	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.ScheduledItem{},
		&models.Client{},
		&models.ClientCadenceSetting{},
		&models.Work{},
	}
}

// AutoMigrate creates or updates all scheduling tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
