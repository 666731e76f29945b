package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"artfolio_backend/internal/config"
	"artfolio_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens the connection from the configured DSN. The handle is
// cached so repeated calls share one pool.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate runs schema migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.PortfolioItem{},
		&models.ItemPermission{},
		&models.Favorite{},
		&models.ShareLink{},
	)
}
