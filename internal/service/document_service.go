package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

type CreateDocumentRequest struct {
	Name         string     `json:"name" binding:"required"`
	DocumentType string     `json:"document_type" binding:"required"`
	FilePath     string     `json:"file_path" binding:"required"`
	MimeType     string     `json:"mime_type"`
	Size         int64      `json:"size"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

type DocumentResponse struct {
	ID           uint       `json:"id"`
	VendorID     uint       `json:"vendor_id"`
	Name         string     `json:"name"`
	DocumentType string     `json:"document_type"`
	FilePath     string     `json:"file_path"`
	MimeType     string     `json:"mime_type"`
	Size         int64      `json:"size"`
	UploadedBy   *uint      `json:"uploaded_by"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	CreatedAt    time.Time  `json:"created_at"`
}

type DocumentService interface {
	ListDocuments(ctx context.Context, vendorID uint) ([]DocumentResponse, error)
	AddDocument(ctx context.Context, vendorID uint, uploadedBy *uint, req CreateDocumentRequest) (*DocumentResponse, error)
	DeleteDocument(ctx context.Context, vendorID, docID uint) error
}

type documentService struct {
	documentRepo repository.DocumentRepository
	vendorRepo   repository.VendorRepository
}

func NewDocumentService(documentRepo repository.DocumentRepository, vendorRepo repository.VendorRepository) DocumentService {
	return &documentService{documentRepo: documentRepo, vendorRepo: vendorRepo}
}

func (s *documentService) ListDocuments(ctx context.Context, vendorID uint) ([]DocumentResponse, error) {
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}

	docs, err := s.documentRepo.ListByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	res := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		res = append(res, toDocumentResponse(d))
	}
	return res, nil
}

func (s *documentService) AddDocument(ctx context.Context, vendorID uint, uploadedBy *uint, req CreateDocumentRequest) (*DocumentResponse, error) {
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}

	doc := &model.VendorDocument{
		VendorID:     vendorID,
		Name:         req.Name,
		DocumentType: req.DocumentType,
		FilePath:     req.FilePath,
		MimeType:     req.MimeType,
		Size:         req.Size,
		UploadedBy:   uploadedBy,
		ExpiryDate:   req.ExpiryDate,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	resp := toDocumentResponse(*doc)
	return &resp, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, vendorID, docID uint) error {
	doc, err := s.documentRepo.FindByID(ctx, docID)
	if err != nil || doc.VendorID != vendorID {
		return fmt.Errorf("document: %w", ErrNotFound)
	}
	if err := s.documentRepo.Delete(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func toDocumentResponse(d model.VendorDocument) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		VendorID:     d.VendorID,
		Name:         d.Name,
		DocumentType: d.DocumentType,
		FilePath:     d.FilePath,
		MimeType:     d.MimeType,
		Size:         d.Size,
		UploadedBy:   d.UploadedBy,
		ExpiryDate:   d.ExpiryDate,
		CreatedAt:    d.CreatedAt,
	}
}
