package database

import (
	"backend/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		zap.L().Warn("failed to auto-migrate models", zap.Error(err))
	}

	return db, nil
}

// Migrate runs auto-migration for all core models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.RefreshToken{},
		&model.VendorCategory{},
		&model.Vendor{},
		&model.VendorContact{},
		&model.VendorDocument{},
	)
}
