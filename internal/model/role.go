package model

import (
	"time"
)

// Built-in role names
const (
	RoleUser  = "User"
	RoleStaff = "Staff"
	RoleAdmin = "Admin"
)

// Role represents a named bundle of permission flags
type Role struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(80);uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:varchar(255)" json:"description"`
	Permissions Permission `gorm:"default:1" json:"permissions"` // integer bitmask
	IsDefault   bool       `gorm:"default:false;index" json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasPermission reports whether the role's bitmask intersects the flag
func (r *Role) HasPermission(p Permission) bool {
	return r.Permissions.Has(p)
}
