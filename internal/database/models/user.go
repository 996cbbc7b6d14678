package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the authorization level of a user
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid checks if the Role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ParseRole converts a stored role string into a Role. Upper-case legacy
// values (MEMBER, ADMIN, SUPER_ADMIN) are accepted.
func ParseRole(s string) (Role, error) {
	switch s {
	case "member", "MEMBER":
		return RoleMember, nil
	case "admin", "ADMIN":
		return RoleAdmin, nil
	case "super_admin", "SUPER_ADMIN":
		return RoleSuperAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is a row of the identity store. TenantID is nil only for super-admins
// and never changes once assigned.
type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID      *string   `json:"tenant_id,omitempty" gorm:"size:36;index"`
	Role          Role      `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Name          string    `json:"name" gorm:"size:200" validate:"max=200"`
	ShopName      string    `json:"shop_name" gorm:"size:200" validate:"max=200"`
	ContactNumber string    `json:"contact_number" gorm:"size:40" validate:"max=40"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate sets the UUID if not already set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasTenant reports whether the user owns tenant data
func (u *User) HasTenant() bool {
	return u.TenantID != nil && *u.TenantID != ""
}
