package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// College classification
const (
	CollegeTypeEngineering = "ENGINEERING"
	CollegeTypeMedicine    = "MEDICINE"
	CollegeTypeArts        = "ARTS"
	CollegeTypeScience     = "SCIENCE"
	CollegeTypeBusiness    = "BUSINESS"
	CollegeTypeLaw         = "LAW"
	CollegeTypeOther       = "OTHER"
)

// CollegeTypes lists the accepted classification values.
var CollegeTypes = []string{
	CollegeTypeEngineering,
	CollegeTypeMedicine,
	CollegeTypeArts,
	CollegeTypeScience,
	CollegeTypeBusiness,
	CollegeTypeLaw,
	CollegeTypeOther,
}

// IsValidCollegeType reports whether t is an accepted classification.
func IsValidCollegeType(t string) bool {
	for _, v := range CollegeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// College is a tenant organizational unit owning sections, forms,
// programs and a published FAQ. Theme, gallery, projects and the FAQ
// aggregate live in jsonb columns interpreted by the application layer.
type College struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Type          string         `gorm:"type:varchar(30);not null" json:"type"`
	Theme         datatypes.JSON `gorm:"type:jsonb" json:"theme,omitempty"`
	GalleryImages datatypes.JSON `gorm:"type:jsonb" json:"gallery_images,omitempty"`
	Projects      datatypes.JSON `gorm:"type:jsonb" json:"projects,omitempty"`
	FAQ           datatypes.JSON `gorm:"type:jsonb" json:"faq,omitempty"`
	UniversityID  *uint          `gorm:"index" json:"university_id,omitempty"`
	CreatedByID   *uint          `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	University   *University   `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	CreatedBy    *User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Sections     []Section     `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	FormSections []FormSection `gorm:"foreignKey:CollegeID" json:"form_sections,omitempty"`
	Programs     []Program     `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"programs,omitempty"`
	Members      []User        `gorm:"foreignKey:CollegeID" json:"members,omitempty"`
}
