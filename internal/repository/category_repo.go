package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.VendorCategory) error
	Update(ctx context.Context, category *model.VendorCategory) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.VendorCategory, error)
	FindByName(ctx context.Context, name string) (*model.VendorCategory, error)
	ListAll(ctx context.Context) ([]model.VendorCategory, error)
	DetachVendors(ctx context.Context, categoryID uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.VendorCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.VendorCategory) error {
	return GetDB(ctx, r.db).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VendorCategory{}).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.VendorCategory, error) {
	var category model.VendorCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.VendorCategory, error) {
	var category model.VendorCategory
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]model.VendorCategory, error) {
	var categories []model.VendorCategory
	if err := GetDB(ctx, r.db).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DetachVendors nulls the category reference on vendors so a category can be
// removed without touching the vendors themselves.
func (r *categoryRepository) DetachVendors(ctx context.Context, categoryID uint) error {
	return GetDB(ctx, r.db).Model(&model.Vendor{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}
