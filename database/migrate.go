package database

import (
	"fmt"

	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/utils"
	"gorm.io/gorm"
)

// AutoMigrate creates the schema and makes sure the default roles exist.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.WithFields("database", nil).Info("AutoMigrate completed.")
	return SeedRoles(db)
}

func SeedRoles(db *gorm.DB) error {
	for _, name := range models.DefaultRoles {
		role := models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}
