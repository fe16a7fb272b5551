package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/auth"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions in dependency order
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedSuperAdmin(); err != nil {
		return fmt.Errorf("failed to seed superadmin: %w", err)
	}

	if err := s.SeedUniversity(); err != nil {
		return fmt.Errorf("failed to seed university: %w", err)
	}

	if err := s.SeedDemoCollege(); err != nil {
		return fmt.Errorf("failed to seed demo college: %w", err)
	}

	log.Println("Database seeding completed.")
	return nil
}

// SeedSuperAdmin creates the initial superadmin account if missing.
// Password comes from SEED_ADMIN_PASSWORD, defaulting for local dev only.
func (s *Seeder) SeedSuperAdmin() error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@campusworks.local"
	}

	var existing model.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Superadmin already exists, skipping")
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-now"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Super Admin",
		UserType:     model.UserTypeSuperAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded superadmin %s", email)
	return nil
}

// SeedUniversity creates the root university tenant if missing
func (s *Seeder) SeedUniversity() error {
	var existing model.University
	if err := s.db.Where("slug = ?", "campusworks").First(&existing).Error; err == nil {
		log.Println("University already exists, skipping")
		return nil
	}

	social, _ := json.Marshal(map[string]string{
		"twitter":  "https://twitter.com/campusworks",
		"facebook": "https://facebook.com/campusworks",
	})

	uni := model.University{
		Name:        "CampusWorks University",
		Slug:        "campusworks",
		Description: "Root tenant for affiliated colleges",
		SocialMedia: datatypes.JSON(social),
	}
	return s.db.Create(&uni).Error
}

// SeedDemoCollege creates one college with sections, an empty FAQ
// aggregate and an FAQ intake form, enough to exercise every workflow
func (s *Seeder) SeedDemoCollege() error {
	var existing model.College
	if err := s.db.Where("slug = ?", "engineering").First(&existing).Error; err == nil {
		log.Println("Demo college already exists, skipping")
		return nil
	}

	var uni model.University
	if err := s.db.Where("slug = ?", "campusworks").First(&uni).Error; err != nil {
		return err
	}

	faq := model.DefaultFAQ()
	faqJSON, err := json.Marshal(faq)
	if err != nil {
		return err
	}

	theme, _ := json.Marshal(map[string]string{
		"primaryColor":   "#1d4ed8",
		"secondaryColor": "#f59e0b",
	})

	return s.db.Transaction(func(tx *gorm.DB) error {
		college := model.College{
			Name:         "College of Engineering",
			Slug:         "engineering",
			Type:         model.CollegeTypeEngineering,
			Theme:        datatypes.JSON(theme),
			FAQ:          datatypes.JSON(faqJSON),
			UniversityID: &uni.ID,
		}
		if err := tx.Create(&college).Error; err != nil {
			return err
		}

		heroSettings, _ := json.Marshal(map[string]string{
			"catchphrase":     "Build what matters",
			"backgroundImage": "",
		})
		sections := []model.Section{
			{CollegeID: college.ID, Title: "Welcome", SectionType: model.SectionTypeHero, Order: 0, Settings: datatypes.JSON(heroSettings)},
			{CollegeID: college.ID, Title: "About", SectionType: model.SectionTypeText, Order: 1, Content: "About the college."},
			{CollegeID: college.ID, Title: "Gallery", SectionType: model.SectionTypeGallery, Order: 2},
		}
		if err := tx.Create(&sections).Error; err != nil {
			return err
		}

		program := model.Program{
			CollegeID:   college.ID,
			Name:        "Computer Science",
			Description: "Four-year undergraduate program",
			Slug:        "computer-science",
		}
		if err := tx.Create(&program).Error; err != nil {
			return err
		}

		intake := model.FormSection{
			CollegeID:   &college.ID,
			Title:       "College of Engineering FAQ Intake",
			Description: "Ask us anything",
			Active:      true,
		}
		if err := tx.Create(&intake).Error; err != nil {
			return err
		}

		validation, _ := json.Marshal(map[string]interface{}{
			model.FAQMarkerKey: true,
			"minLength":        10,
			"maxLength":        1000,
		})
		field := model.FormField{
			FormSectionID: intake.ID,
			Label:         "Your question",
			Type:          model.FieldTypeTextarea,
			IsRequired:    true,
			Validation:    datatypes.JSON(validation),
			Order:         0,
		}
		return tx.Create(&field).Error
	})
}
