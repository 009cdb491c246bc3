package service_test

import (
	"testing"

	"backend/internal/database"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite store with the full schema.
// A single connection keeps the in-memory database alive for the test
// and lets transactions share it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newRoleService(t *testing.T, db *gorm.DB) (service.RoleService, repository.RoleRepository) {
	t.Helper()
	roleRepo := repository.NewRoleRepository(db)
	return service.NewRoleService(roleRepo, repository.NewTransactionManager(db)), roleRepo
}

func newVendorService(t *testing.T, db *gorm.DB) (service.VendorService, repository.VendorRepository) {
	t.Helper()
	vendorRepo := repository.NewVendorRepository(db)
	return service.NewVendorService(vendorRepo, repository.NewTransactionManager(db), nil), vendorRepo
}
