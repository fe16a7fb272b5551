package university

import (
	"encoding/json"
	"errors"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/campusworks/collage-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UniversityHandler manages the top-level tenant records
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB, validator *validation.Validator) *UniversityHandler {
	return &UniversityHandler{db: db, validator: validator}
}

// CreateUniversityRequest is the university creation payload
type CreateUniversityRequest struct {
	Name        string                 `json:"name" validate:"required,min=2,max=200"`
	Slug        string                 `json:"slug" validate:"required,slug,min=2,max=100"`
	LogoURL     string                 `json:"logo_url"`
	Description string                 `json:"description"`
	SocialMedia map[string]string      `json:"social_media"`
	Content     map[string]interface{} `json:"content"`
}

// UpdateUniversityRequest is a partial update, nil fields are untouched
type UpdateUniversityRequest struct {
	Name        *string                `json:"name"`
	Slug        *string                `json:"slug"`
	LogoURL     *string                `json:"logo_url"`
	Description *string                `json:"description"`
	SocialMedia map[string]string      `json:"social_media"`
	NewsItems   []interface{}          `json:"news_items"`
	Content     map[string]interface{} `json:"content"`
}

// Create creates a university
func (h *UniversityHandler) Create(c *fiber.Ctx) error {
	var req CreateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var count int64
	if err := h.db.WithContext(c.Context()).Model(&model.University{}).
		Where("slug = ?", req.Slug).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to check slug")
	}
	if count > 0 {
		return response.Conflict(c, "A university with this slug already exists")
	}

	university := model.University{
		Name:        validation.SanitizeString(req.Name),
		Slug:        req.Slug,
		LogoURL:     req.LogoURL,
		Description: req.Description,
	}
	if req.SocialMedia != nil {
		socialJSON, err := json.Marshal(req.SocialMedia)
		if err != nil {
			return response.BadRequest(c, "Invalid social media")
		}
		university.SocialMedia = datatypes.JSON(socialJSON)
	}
	if req.Content != nil {
		contentJSON, err := json.Marshal(req.Content)
		if err != nil {
			return response.BadRequest(c, "Invalid content")
		}
		university.Content = datatypes.JSON(contentJSON)
	}

	if err := h.db.WithContext(c.Context()).Create(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to create university")
	}
	return response.Created(c, university)
}

// List returns all universities with their colleges
func (h *UniversityHandler) List(c *fiber.Ctx) error {
	var universities []model.University
	err := h.db.WithContext(c.Context()).
		Preload("Colleges").
		Order("name ASC").
		Find(&universities).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list universities")
	}
	return response.Success(c, universities)
}

// Get returns one university with its colleges
func (h *UniversityHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid university ID")
	}

	var university model.University
	err = h.db.WithContext(c.Context()).
		Preload("Colleges").
		First(&university, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to load university")
	}
	return response.Success(c, university)
}

// Update applies a partial update
func (h *UniversityHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid university ID")
	}

	var req UpdateUniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var university model.University
	if err := h.db.WithContext(c.Context()).First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to load university")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return response.BadRequest(c, "Name cannot be empty")
		}
		university.Name = validation.SanitizeString(*req.Name)
	}
	if req.Slug != nil && *req.Slug != university.Slug {
		if !validation.ValidateSlug(*req.Slug) {
			return response.BadRequest(c, "Slug must be a lowercase kebab-case identifier")
		}
		var count int64
		if err := h.db.WithContext(c.Context()).Model(&model.University{}).
			Where("slug = ? AND id <> ?", *req.Slug, university.ID).Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to check slug")
		}
		if count > 0 {
			return response.Conflict(c, "A university with this slug already exists")
		}
		university.Slug = *req.Slug
	}
	if req.LogoURL != nil {
		university.LogoURL = *req.LogoURL
	}
	if req.Description != nil {
		university.Description = *req.Description
	}
	if req.SocialMedia != nil {
		socialJSON, err := json.Marshal(req.SocialMedia)
		if err != nil {
			return response.BadRequest(c, "Invalid social media")
		}
		university.SocialMedia = datatypes.JSON(socialJSON)
	}
	if req.NewsItems != nil {
		newsJSON, err := json.Marshal(req.NewsItems)
		if err != nil {
			return response.BadRequest(c, "Invalid news items")
		}
		university.NewsItems = datatypes.JSON(newsJSON)
	}
	if req.Content != nil {
		contentJSON, err := json.Marshal(req.Content)
		if err != nil {
			return response.BadRequest(c, "Invalid content")
		}
		university.Content = datatypes.JSON(contentJSON)
	}

	if err := h.db.WithContext(c.Context()).Save(&university).Error; err != nil {
		return response.InternalServerError(c, "Failed to update university")
	}
	return response.SuccessWithMessage(c, "University updated successfully", university)
}

// Delete removes a university and cascades through every college under
// it, each with its own sections, programs, forms, and submissions
func (h *UniversityHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid university ID")
	}

	var university model.University
	if err := h.db.WithContext(c.Context()).First(&university, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to load university")
	}

	err = h.db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var collegeIDs []uint
		if err := tx.Model(&model.College{}).
			Where("university_id = ?", university.ID).
			Pluck("id", &collegeIDs).Error; err != nil {
			return err
		}
		for _, collegeID := range collegeIDs {
			if err := services.CascadeDeleteCollege(tx, collegeID); err != nil {
				return err
			}
		}
		return tx.Delete(&university).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete university")
	}
	return response.SuccessWithMessage(c, "University deleted successfully", fiber.Map{"id": university.ID})
}
