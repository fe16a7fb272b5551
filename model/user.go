package model

import (
	"time"

	"gorm.io/gorm"
)

// User types
const (
	UserTypeAdmin      = "ADMIN"
	UserTypeSuperAdmin = "SUPERADMIN"
	UserTypeGuest      = "GUEST"
)

// User represents an account, either registered locally or bridged from
// the external identity provider on first sign-in.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	ExternalID   *string        `gorm:"uniqueIndex" json:"external_id,omitempty"` // provider subject, nil for local accounts
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"` // empty for provider-only accounts
	Name         string         `gorm:"not null" json:"name"`
	AvatarURL    string         `gorm:"type:varchar(512)" json:"avatar_url"`
	UserType     string         `gorm:"type:varchar(20);default:'GUEST'" json:"user_type"` // ADMIN, SUPERADMIN, GUEST
	CollegeID    *uint          `gorm:"index" json:"college_id,omitempty"`                 // membership college

	// Relationships
	CollegesCreated []College `gorm:"foreignKey:CreatedByID" json:"colleges_created,omitempty"`
	AuditLogs       []AuditLog `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user may perform administrative mutations.
func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin || u.UserType == UserTypeSuperAdmin
}
