package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// University is the top-level tenant above colleges
type University struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	LogoURL     string         `gorm:"type:varchar(512)" json:"logo_url"`
	SocialMedia datatypes.JSON `gorm:"type:jsonb" json:"social_media,omitempty"`
	Description string         `gorm:"type:text" json:"description"`
	NewsItems   datatypes.JSON `gorm:"type:jsonb" json:"news_items,omitempty"`
	Content     datatypes.JSON `gorm:"type:jsonb" json:"content,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Colleges []College `gorm:"foreignKey:UniversityID" json:"colleges,omitempty"`
}

func (University) TableName() string {
	return "universities"
}
