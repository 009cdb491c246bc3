package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

// --- Contact DTOs ---

type ContactPayload struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ContactResponse struct {
	ID        uint   `json:"id"`
	VendorID  uint   `json:"vendor_id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

// --- Vendor DTOs ---

type CreateVendorRequest struct {
	Name       string `json:"name" binding:"required"`
	LegalName  string `json:"legal_name"`
	TaxID      string `json:"tax_id"`
	Website    string `json:"website"`
	Status     string `json:"status"`
	CategoryID *uint  `json:"category_id"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`

	BankName          string `json:"bank_name"`
	BankAccountName   string `json:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankRoutingNumber string `json:"bank_routing_number"`

	PrimaryContact *ContactPayload `json:"primary_contact"`
}

type UpdateVendorRequest struct {
	Name       *string `json:"name"`
	LegalName  *string `json:"legal_name"`
	TaxID      *string `json:"tax_id"`
	Website    *string `json:"website"`
	Status     *string `json:"status"`
	CategoryID *uint   `json:"category_id"`

	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`

	BankName          *string `json:"bank_name"`
	BankAccountName   *string `json:"bank_account_name"`
	BankAccountNumber *string `json:"bank_account_number"`
	BankRoutingNumber *string `json:"bank_routing_number"`

	PrimaryContact *ContactPayload `json:"primary_contact"` // nil = not sent
}

type VendorResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	LegalName  string `json:"legal_name"`
	TaxID      string `json:"tax_id"`
	Website    string `json:"website"`
	Status     string `json:"status"`
	CategoryID *uint  `json:"category_id"`
	Category   string `json:"category,omitempty"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	FullAddress  string `json:"full_address"`

	BankName          string `json:"bank_name"`
	BankAccountName   string `json:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankRoutingNumber string `json:"bank_routing_number"`

	Contacts  []ContactResponse `json:"contacts"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// --- Interface ---

type VendorService interface {
	ListVendors(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]VendorResponse, int64, error)
	GetVendor(ctx context.Context, id uint) (*VendorResponse, error)
	CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error)
	UpdateVendor(ctx context.Context, id uint, req UpdateVendorRequest) (*VendorResponse, error)
	DeleteVendor(ctx context.Context, id uint) error
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	txManager  repository.TransactionManager
	hub        interface{ Publish(event string, payload interface{}) } // optional event hub
}

func NewVendorService(
	vendorRepo repository.VendorRepository,
	txManager repository.TransactionManager,
	hub interface{ Publish(event string, payload interface{}) },
) VendorService {
	return &vendorService{vendorRepo: vendorRepo, txManager: txManager, hub: hub}
}

// --- Validation helpers ---

func validateContact(contact *ContactPayload) error {
	if contact == nil {
		return nil
	}
	if contact.Name == "" {
		return errors.New("primary_contact: name is required")
	}
	if contact.Email != "" {
		if _, err := mail.ParseAddress(contact.Email); err != nil {
			return errors.New("primary_contact: invalid email format")
		}
	}
	return nil
}

func (s *vendorService) notify(event string, vendor *model.Vendor) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(event, map[string]interface{}{
		"id":   vendor.ID,
		"name": vendor.Name,
	})
}

// --- CRUD ---

func (s *vendorService) ListVendors(ctx context.Context, filter repository.VendorFilter, page, limit int) ([]VendorResponse, int64, error) {
	vendors, total, err := s.vendorRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch vendors: %w", err)
	}

	res := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		res = append(res, toVendorResponse(&vendors[i]))
	}
	return res, total, nil
}

func (s *vendorService) GetVendor(ctx context.Context, id uint) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}
	resp := toVendorResponse(vendor)
	return &resp, nil
}

func (s *vendorService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := validateContact(req.PrimaryContact); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.VendorStatusActive
	}

	vendor := &model.Vendor{
		Name:              req.Name,
		LegalName:         req.LegalName,
		TaxID:             req.TaxID,
		Website:           req.Website,
		Status:            status,
		CategoryID:        req.CategoryID,
		AddressLine1:      req.AddressLine1,
		AddressLine2:      req.AddressLine2,
		City:              req.City,
		State:             req.State,
		PostalCode:        req.PostalCode,
		Country:           req.Country,
		BankName:          req.BankName,
		BankAccountName:   req.BankAccountName,
		BankAccountNumber: req.BankAccountNumber,
		BankRoutingNumber: req.BankRoutingNumber,
	}

	// Vendor and its primary contact commit as one unit: a failure leaves
	// neither row behind
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.vendorRepo.Create(txCtx, vendor); err != nil {
			return fmt.Errorf("failed to create vendor: %w", err)
		}
		if req.PrimaryContact != nil {
			contact := &model.VendorContact{
				VendorID:  vendor.ID,
				Name:      req.PrimaryContact.Name,
				Title:     req.PrimaryContact.Title,
				Email:     req.PrimaryContact.Email,
				Phone:     req.PrimaryContact.Phone,
				IsPrimary: true,
			}
			if err := s.vendorRepo.CreateContact(txCtx, contact); err != nil {
				return fmt.Errorf("failed to create primary contact: %w", err)
			}
			vendor.Contacts = append(vendor.Contacts, *contact)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify("vendor.created", vendor)
	resp := toVendorResponse(vendor)
	return &resp, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, id uint, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vendor: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("name cannot be empty")
		}
		vendor.Name = *req.Name
	}
	if req.LegalName != nil {
		vendor.LegalName = *req.LegalName
	}
	if req.TaxID != nil {
		vendor.TaxID = *req.TaxID
	}
	if req.Website != nil {
		vendor.Website = *req.Website
	}
	if req.Status != nil {
		vendor.Status = *req.Status
	}
	if req.CategoryID != nil {
		vendor.CategoryID = req.CategoryID
	}
	if req.AddressLine1 != nil {
		vendor.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		vendor.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		vendor.City = *req.City
	}
	if req.State != nil {
		vendor.State = *req.State
	}
	if req.PostalCode != nil {
		vendor.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		vendor.Country = *req.Country
	}
	if req.BankName != nil {
		vendor.BankName = *req.BankName
	}
	if req.BankAccountName != nil {
		vendor.BankAccountName = *req.BankAccountName
	}
	if req.BankAccountNumber != nil {
		vendor.BankAccountNumber = *req.BankAccountNumber
	}
	if req.BankRoutingNumber != nil {
		vendor.BankRoutingNumber = *req.BankRoutingNumber
	}

	if err := validateContact(req.PrimaryContact); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.vendorRepo.Update(txCtx, vendor); err != nil {
			return fmt.Errorf("failed to update vendor: %w", err)
		}

		if req.PrimaryContact == nil {
			return nil
		}

		// An existing primary contact is mutated in place; otherwise a new
		// one is created. Either way the vendor ends the transaction with
		// exactly one primary contact.
		if primary := vendor.PrimaryContact(); primary != nil {
			primary.Name = req.PrimaryContact.Name
			primary.Title = req.PrimaryContact.Title
			primary.Email = req.PrimaryContact.Email
			primary.Phone = req.PrimaryContact.Phone
			if err := s.vendorRepo.UpdateContact(txCtx, primary); err != nil {
				return fmt.Errorf("failed to update primary contact: %w", err)
			}
			return s.vendorRepo.DemoteOtherPrimaries(txCtx, vendor.ID, primary.ID)
		}

		contact := &model.VendorContact{
			VendorID:  vendor.ID,
			Name:      req.PrimaryContact.Name,
			Title:     req.PrimaryContact.Title,
			Email:     req.PrimaryContact.Email,
			Phone:     req.PrimaryContact.Phone,
			IsPrimary: true,
		}
		if err := s.vendorRepo.CreateContact(txCtx, contact); err != nil {
			return fmt.Errorf("failed to create primary contact: %w", err)
		}
		vendor.Contacts = append(vendor.Contacts, *contact)
		return s.vendorRepo.DemoteOtherPrimaries(txCtx, vendor.ID, contact.ID)
	})
	if err != nil {
		return nil, err
	}

	s.notify("vendor.updated", vendor)
	resp := toVendorResponse(vendor)
	return &resp, nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, id uint) error {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("vendor: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to fetch vendor: %w", err)
	}

	// Children go first, then the vendor, all in one transaction
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.vendorRepo.DeleteContactsByVendorID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete vendor contacts: %w", err)
		}
		if err := s.vendorRepo.DeleteDocumentsByVendorID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete vendor documents: %w", err)
		}
		if err := s.vendorRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete vendor: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify("vendor.deleted", vendor)
	return nil
}

// --- Response mappers ---

func toVendorResponse(v *model.Vendor) VendorResponse {
	contacts := make([]ContactResponse, 0, len(v.Contacts))
	for _, c := range v.Contacts {
		contacts = append(contacts, ContactResponse{
			ID:        c.ID,
			VendorID:  c.VendorID,
			Name:      c.Name,
			Title:     c.Title,
			Email:     c.Email,
			Phone:     c.Phone,
			IsPrimary: c.IsPrimary,
		})
	}

	categoryName := ""
	if v.Category != nil {
		categoryName = v.Category.Name
	}

	return VendorResponse{
		ID:                v.ID,
		Name:              v.Name,
		LegalName:         v.LegalName,
		TaxID:             v.TaxID,
		Website:           v.Website,
		Status:            v.Status,
		CategoryID:        v.CategoryID,
		Category:          categoryName,
		AddressLine1:      v.AddressLine1,
		AddressLine2:      v.AddressLine2,
		City:              v.City,
		State:             v.State,
		PostalCode:        v.PostalCode,
		Country:           v.Country,
		FullAddress:       v.FullAddress(),
		BankName:          v.BankName,
		BankAccountName:   v.BankAccountName,
		BankAccountNumber: v.BankAccountNumber,
		BankRoutingNumber: v.BankRoutingNumber,
		Contacts:          contacts,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}
