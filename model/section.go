package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section types discriminate rendering on the college page
const (
	SectionTypeHero     = "HERO"
	SectionTypeGallery  = "GALLERY"
	SectionTypeText     = "TEXT"
	SectionTypePrograms = "PROGRAMS"
	SectionTypeContact  = "CONTACT"
	SectionTypeCustom   = "CUSTOM"
)

// Section is an ordered, typed content block on a college's page.
// Order values need not be contiguous, display sorts ascending.
type Section struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CollegeID   uint           `gorm:"not null;index" json:"college_id"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"type:text" json:"content"`
	Order       int            `gorm:"column:display_order;default:0" json:"order"`
	SectionType string         `gorm:"type:varchar(30);not null" json:"section_type"`
	Settings    datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"` // type-specific, e.g. hero catchphrase
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	College College `gorm:"foreignKey:CollegeID" json:"-"`
}
