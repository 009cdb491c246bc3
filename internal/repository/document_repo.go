package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.VendorDocument) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.VendorDocument, error)
	ListByVendorID(ctx context.Context, vendorID uint) ([]model.VendorDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.VendorDocument) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VendorDocument{}).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (*model.VendorDocument, error) {
	var doc model.VendorDocument
	if err := GetDB(ctx, r.db).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByVendorID(ctx context.Context, vendorID uint) ([]model.VendorDocument, error) {
	var docs []model.VendorDocument
	if err := GetDB(ctx, r.db).Where("vendor_id = ?", vendorID).Order("created_at desc").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
