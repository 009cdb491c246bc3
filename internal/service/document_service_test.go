package service_test

import (
	"context"
	"testing"

	"backend/internal/repository"
	"backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDocumentService(t *testing.T, db *gorm.DB) service.DocumentService {
	t.Helper()
	return service.NewDocumentService(
		repository.NewDocumentRepository(db),
		repository.NewVendorRepository(db),
	)
}

func TestAddAndListDocuments(t *testing.T) {
	db := newTestDB(t)
	documentService := newDocumentService(t, db)
	vendorService, _ := newVendorService(t, db)
	ctx := context.Background()

	vendor, err := vendorService.CreateVendor(ctx, service.CreateVendorRequest{Name: "Acme Catering"})
	require.NoError(t, err)

	uploader := uint(7)
	doc, err := documentService.AddDocument(ctx, vendor.ID, &uploader, service.CreateDocumentRequest{
		Name:         "W-9 Form",
		DocumentType: "tax",
		FilePath:     "/uploads/acme/w9.pdf",
		MimeType:     "application/pdf",
		Size:         24576,
	})
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, doc.VendorID)
	require.NotNil(t, doc.UploadedBy)
	assert.Equal(t, uploader, *doc.UploadedBy)

	docs, err := documentService.ListDocuments(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "W-9 Form", docs[0].Name)
}

func TestAddDocument_UnknownVendor(t *testing.T) {
	db := newTestDB(t)
	documentService := newDocumentService(t, db)

	_, err := documentService.AddDocument(context.Background(), 123, nil, service.CreateDocumentRequest{
		Name: "W-9 Form", DocumentType: "tax", FilePath: "/uploads/w9.pdf",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteDocument_VendorMismatch(t *testing.T) {
	db := newTestDB(t)
	documentService := newDocumentService(t, db)
	vendorService, _ := newVendorService(t, db)
	ctx := context.Background()

	acme, err := vendorService.CreateVendor(ctx, service.CreateVendorRequest{Name: "Acme Catering"})
	require.NoError(t, err)
	globex, err := vendorService.CreateVendor(ctx, service.CreateVendorRequest{Name: "Globex Supplies"})
	require.NoError(t, err)

	doc, err := documentService.AddDocument(ctx, acme.ID, nil, service.CreateDocumentRequest{
		Name: "Contract", DocumentType: "contract", FilePath: "/uploads/contract.pdf",
	})
	require.NoError(t, err)

	// A document can only be removed through its own vendor
	err = documentService.DeleteDocument(ctx, globex.ID, doc.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, documentService.DeleteDocument(ctx, acme.ID, doc.ID))

	docs, err := documentService.ListDocuments(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
