package service_test

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(t *testing.T, db *gorm.DB) service.CategoryService {
	t.Helper()
	return service.NewCategoryService(
		repository.NewCategoryRepository(db),
		repository.NewTransactionManager(db),
	)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	categoryService := newCategoryService(t, db)
	ctx := context.Background()

	_, err := categoryService.CreateCategory(ctx, service.CreateCategoryRequest{Name: "Catering"})
	require.NoError(t, err)

	_, err = categoryService.CreateCategory(ctx, service.CreateCategoryRequest{Name: "Catering"})
	assert.Error(t, err)
}

func TestUpdateCategory_RenameCollision(t *testing.T) {
	db := newTestDB(t)
	categoryService := newCategoryService(t, db)
	ctx := context.Background()

	_, err := categoryService.CreateCategory(ctx, service.CreateCategoryRequest{Name: "Catering"})
	require.NoError(t, err)
	av, err := categoryService.CreateCategory(ctx, service.CreateCategoryRequest{Name: "AV Equipment"})
	require.NoError(t, err)

	_, err = categoryService.UpdateCategory(ctx, av.ID, service.UpdateCategoryRequest{Name: strPtr("Catering")})
	assert.Error(t, err)

	// Renaming to its own current name is allowed
	_, err = categoryService.UpdateCategory(ctx, av.ID, service.UpdateCategoryRequest{Name: strPtr("AV Equipment")})
	assert.NoError(t, err)
}

func TestDeleteCategory_DetachesVendors(t *testing.T) {
	db := newTestDB(t)
	categoryService := newCategoryService(t, db)
	vendorService, vendorRepo := newVendorService(t, db)
	ctx := context.Background()

	category, err := categoryService.CreateCategory(ctx, service.CreateCategoryRequest{Name: "Catering"})
	require.NoError(t, err)

	vendor, err := vendorService.CreateVendor(ctx, service.CreateVendorRequest{
		Name: "Acme Catering", CategoryID: &category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, categoryService.DeleteCategory(ctx, category.ID))

	refetched, err := vendorRepo.FindByID(ctx, vendor.ID)
	require.NoError(t, err, "vendor survives its category")
	assert.Nil(t, refetched.CategoryID)

	var count int64
	db.Model(&model.VendorCategory{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	db := newTestDB(t)
	categoryService := newCategoryService(t, db)

	err := categoryService.DeleteCategory(context.Background(), 77)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
