package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Form field input kinds
const (
	FieldTypeText     = "TEXT"
	FieldTypeTextarea = "TEXTAREA"
	FieldTypeEmail    = "EMAIL"
	FieldTypeNumber   = "NUMBER"
	FieldTypeSelect   = "SELECT"
	FieldTypeRadio    = "RADIO"
	FieldTypeCheckbox = "CHECKBOX"
	FieldTypeDate     = "DATE"
)

// FieldTypes lists the accepted field kinds.
var FieldTypes = []string{
	FieldTypeText,
	FieldTypeTextarea,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeCheckbox,
	FieldTypeDate,
}

// IsValidFieldType reports whether t is an accepted field kind.
func IsValidFieldType(t string) bool {
	for _, v := range FieldTypes {
		if v == t {
			return true
		}
	}
	return false
}

// FAQMarkerKey is the canonical validation-bag key tagging FAQ-intake
// fields. Old rows may still carry a lowercase "fqa" key, queries only
// look at this one.
const FAQMarkerKey = "FAQ"

// FormSection is a named, orderable schema grouping form fields.
// CollegeID is nullable, a form may be college-scoped or global.
type FormSection struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CollegeID   *uint          `gorm:"index" json:"college_id,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	College     *College         `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Fields      []FormField      `gorm:"foreignKey:FormSectionID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
	Submissions []FormSubmission `gorm:"foreignKey:FormSectionID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

// FormField is one typed input definition within a form section.
// The validation column is a free-form jsonb bag holding structural
// rules (minLength, maxLength) and tags such as the FAQ intake marker.
type FormField struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	FormSectionID uint           `gorm:"not null;index" json:"form_section_id"`
	Label         string         `gorm:"not null" json:"label"`
	Type          string         `gorm:"type:varchar(30);not null" json:"type"`
	IsRequired    bool           `gorm:"default:false" json:"is_required"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"` // ordered list for choice fields
	Validation    datatypes.JSON `gorm:"type:jsonb" json:"validation,omitempty"`
	Order         int            `gorm:"column:display_order;default:0" json:"order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	FormSection FormSection `gorm:"foreignKey:FormSectionID" json:"-"`
}

// FormSubmission is one visitor-submitted answer set. Data maps field id
// to submitted value and is stored as given, hard deletes only.
type FormSubmission struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	FormSectionID uint           `gorm:"not null;index" json:"form_section_id"`
	CollegeID     uint           `gorm:"not null;index" json:"college_id"`
	Data          datatypes.JSON `gorm:"type:jsonb;not null" json:"data"`
	SubmittedAt   time.Time      `gorm:"autoCreateTime" json:"submitted_at"`

	// Relationships
	FormSection FormSection `gorm:"foreignKey:FormSectionID" json:"form_section,omitempty"`
	College     College     `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
}
