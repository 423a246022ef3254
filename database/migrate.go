package database

import (
	"matchboxd_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model, including the
// unique (user_id, match_id) indexes on the engagement tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Rating{},
		&models.Comment{},
		&models.Favorite{},
		&models.WatchedMatch{},
		&models.WatchlistItem{},
	)
}
