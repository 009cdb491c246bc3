package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents the central user entity for logic and database structure
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"` // never exposed over JSON
	FirstName    string     `gorm:"type:varchar(80)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(80)" json:"last_name"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	Roles        []Role     `gorm:"many2many:user_roles;" json:"roles"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SetPassword derives and stores a salted one-way hash of the plaintext.
// The plaintext itself is never persisted.
func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// VerifyPassword compares the plaintext against the stored hash
func (u *User) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// EffectivePermissions unions the bitmasks of all assigned roles
func (u *User) EffectivePermissions() Permission {
	var mask Permission
	for _, role := range u.Roles {
		mask |= role.Permissions
	}
	return mask
}

// HasPermission reports whether any assigned role's bitmask intersects the flag
func (u *User) HasPermission(p Permission) bool {
	for _, role := range u.Roles {
		if role.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasRole reports whether the user holds the named role (exact match)
func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the Admin role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// FullName returns "First Last", falling back to the username when either
// name part is missing
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
