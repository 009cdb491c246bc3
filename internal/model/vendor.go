package model

import (
	"strings"
	"time"
)

// VendorStatusActive is the default status applied at creation
const VendorStatusActive = "active"

// VendorCategory groups vendors, e.g. "Catering" or "AV Equipment"
type VendorCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Vendor represents a supplier the church does business with
type Vendor struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(255);not null;index" json:"name"`
	LegalName  string `gorm:"type:varchar(255)" json:"legal_name"`
	TaxID      string `gorm:"type:varchar(50)" json:"tax_id"`
	Website    string `gorm:"type:varchar(255)" json:"website"`
	Status     string `gorm:"type:varchar(20);default:'active'" json:"status"`
	CategoryID *uint  `gorm:"index" json:"category_id"`

	// Address fields
	AddressLine1 string `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	State        string `gorm:"type:varchar(100)" json:"state"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code"`
	Country      string `gorm:"type:varchar(100)" json:"country"`

	// Banking information
	BankName          string `gorm:"type:varchar(255)" json:"bank_name"`
	BankAccountName   string `gorm:"type:varchar(255)" json:"bank_account_name"`
	BankAccountNumber string `gorm:"type:varchar(50)" json:"bank_account_number"`
	BankRoutingNumber string `gorm:"type:varchar(50)" json:"bank_routing_number"`

	Category  *VendorCategory  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Contacts  []VendorContact  `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"contacts"`
	Documents []VendorDocument `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"documents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryContact returns the contact flagged primary, or nil
func (v *Vendor) PrimaryContact() *VendorContact {
	for i := range v.Contacts {
		if v.Contacts[i].IsPrimary {
			return &v.Contacts[i]
		}
	}
	return nil
}

// FullAddress joins the non-empty address parts into one line
func (v *Vendor) FullAddress() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{v.AddressLine1, v.AddressLine2, v.City, v.State, v.PostalCode, v.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// VendorContact is a person at a vendor; at most one per vendor is primary
type VendorContact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VendorID  uint      `gorm:"not null;index" json:"vendor_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Title     string    `gorm:"type:varchar(100)" json:"title"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VendorDocument tracks metadata for a file attached to a vendor.
// File bytes live outside this service; only the path is recorded.
type VendorDocument struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	VendorID     uint       `gorm:"not null;index" json:"vendor_id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	DocumentType string     `gorm:"type:varchar(50);not null" json:"document_type"`
	FilePath     string     `gorm:"type:varchar(512);not null" json:"file_path"`
	MimeType     string     `gorm:"type:varchar(100)" json:"mime_type"`
	Size         int64      `json:"size"` // bytes
	UploadedBy   *uint      `json:"uploaded_by"`
	Uploader     *User      `gorm:"foreignKey:UploadedBy" json:"-"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
