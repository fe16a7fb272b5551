package model

import (
	"time"

	"gorm.io/gorm"
)

// Program is an academic program offered by a college. Mutations must
// verify the program belongs to the claimed college before applying.
type Program struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CollegeID   uint           `gorm:"not null;index" json:"college_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Slug        string         `gorm:"not null;index" json:"slug"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	College College `gorm:"foreignKey:CollegeID" json:"-"`
}
