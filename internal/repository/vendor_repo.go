package repository

import (
	"context"
	"strings"

	"backend/internal/model"

	"gorm.io/gorm"
)

// VendorFilter narrows vendor listings; zero values mean "no restriction"
type VendorFilter struct {
	Query      string
	CategoryID *uint
	Status     string
}

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Vendor, error)
	List(ctx context.Context, filter VendorFilter, page, limit int) ([]model.Vendor, int64, error)

	CreateContact(ctx context.Context, contact *model.VendorContact) error
	UpdateContact(ctx context.Context, contact *model.VendorContact) error
	DemoteOtherPrimaries(ctx context.Context, vendorID, keepContactID uint) error
	DeleteContactsByVendorID(ctx context.Context, vendorID uint) error
	DeleteDocumentsByVendorID(ctx context.Context, vendorID uint) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Create(vendor).Error
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Omit("Contacts", "Documents", "Category").Save(vendor).Error
}

func (r *vendorRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vendor{}).Error
}

func (r *vendorRepository) FindByID(ctx context.Context, id uint) (*model.Vendor, error) {
	var vendor model.Vendor
	err := GetDB(ctx, r.db).
		Preload("Contacts").
		Preload("Documents").
		Preload("Category").
		First(&vendor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// applyFilter composes the search/filter restrictions onto a query.
// LOWER(...) LIKE keeps the substring match case-insensitive on both
// Postgres and the SQLite store used in tests.
func applyFilter(query *gorm.DB, filter VendorFilter) *gorm.DB {
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(legal_name) LIKE ? OR LOWER(tax_id) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter, page, limit int) ([]model.Vendor, int64, error) {
	var vendors []model.Vendor
	var total int64

	db := GetDB(ctx, r.db)
	if err := applyFilter(db.Model(&model.Vendor{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := applyFilter(db.Model(&model.Vendor{}), filter).
		Preload("Contacts").
		Preload("Category").
		Order("name asc").
		Offset(offset).
		Limit(limit).
		Find(&vendors).Error
	if err != nil {
		return nil, 0, err
	}

	return vendors, total, nil
}

func (r *vendorRepository) CreateContact(ctx context.Context, contact *model.VendorContact) error {
	return GetDB(ctx, r.db).Create(contact).Error
}

func (r *vendorRepository) UpdateContact(ctx context.Context, contact *model.VendorContact) error {
	return GetDB(ctx, r.db).Save(contact).Error
}

// DemoteOtherPrimaries clears the primary flag on every other contact of the
// vendor, keeping the invariant of at most one primary contact per vendor.
func (r *vendorRepository) DemoteOtherPrimaries(ctx context.Context, vendorID, keepContactID uint) error {
	return GetDB(ctx, r.db).Model(&model.VendorContact{}).
		Where("vendor_id = ? AND id <> ? AND is_primary = ?", vendorID, keepContactID, true).
		Update("is_primary", false).Error
}

func (r *vendorRepository) DeleteContactsByVendorID(ctx context.Context, vendorID uint) error {
	return GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).Delete(&model.VendorContact{}).Error
}

func (r *vendorRepository) DeleteDocumentsByVendorID(ctx context.Context, vendorID uint) error {
	return GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).Delete(&model.VendorDocument{}).Error
}
