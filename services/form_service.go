package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campusworks/collage-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormService owns form schemas: sections and their typed, orderable
// fields.
type FormService struct {
	db *gorm.DB
}

// NewFormService creates a new form service
func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

// CreateFormSectionInput carries the fields for a new form section
type CreateFormSectionInput struct {
	Title       string
	Description string
	CollegeID   *uint
}

// CreateFormFieldInput carries the fields for a new form field
type CreateFormFieldInput struct {
	FormSectionID uint
	Label         string
	Type          string
	IsRequired    bool
	Options       []string
	Validation    map[string]interface{}
	Order         int
}

// UpdateFormSectionInput is a partial update, nil fields are untouched
type UpdateFormSectionInput struct {
	Title       *string
	Description *string
	Active      *bool
	CollegeID   *uint
}

// UpdateFormFieldInput is a partial update, nil fields are untouched
type UpdateFormFieldInput struct {
	Label      *string
	Type       *string
	IsRequired *bool
	Options    []string
	Validation map[string]interface{}
	Order      *int
}

// ListFormSectionsOptions filters and paginates section listings
type ListFormSectionsOptions struct {
	CollegeID *uint
	Page      int
	Limit     int
}

// CreateSection creates a form section, active by default
func (s *FormService) CreateSection(ctx context.Context, in CreateFormSectionInput) (*model.FormSection, error) {
	if in.Title == "" {
		return nil, validationErr("title is required")
	}

	if in.CollegeID != nil {
		if err := s.collegeExists(ctx, *in.CollegeID); err != nil {
			return nil, err
		}
	}

	section := model.FormSection{
		Title:       in.Title,
		Description: in.Description,
		CollegeID:   in.CollegeID,
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, fmt.Errorf("failed to create form section: %w", err)
	}
	return &section, nil
}

// CreateField creates a field on an existing form section
func (s *FormService) CreateField(ctx context.Context, in CreateFormFieldInput) (*model.FormField, error) {
	switch {
	case in.Label == "":
		return nil, validationErr("label is required")
	case in.Type == "":
		return nil, validationErr("type is required")
	case in.FormSectionID == 0:
		return nil, validationErr("formSectionId is required")
	}

	var section model.FormSection
	if err := s.db.WithContext(ctx).First(&section, in.FormSectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("form section %d: %w", in.FormSectionID, ErrNotFound)
		}
		return nil, err
	}

	field := model.FormField{
		FormSectionID: in.FormSectionID,
		Label:         in.Label,
		Type:          in.Type,
		IsRequired:    in.IsRequired,
		Order:         in.Order,
	}

	options := in.Options
	if options == nil {
		options = []string{}
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	field.Options = datatypes.JSON(optionsJSON)

	if in.Validation != nil {
		validationJSON, err := json.Marshal(in.Validation)
		if err != nil {
			return nil, err
		}
		field.Validation = datatypes.JSON(validationJSON)
	}

	if err := s.db.WithContext(ctx).Create(&field).Error; err != nil {
		return nil, fmt.Errorf("failed to create form field: %w", err)
	}
	return &field, nil
}

// UpdateSection applies a partial update by id
func (s *FormService) UpdateSection(ctx context.Context, id uint, in UpdateFormSectionInput) (*model.FormSection, error) {
	var section model.FormSection
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("form section %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, validationErr("title cannot be empty")
		}
		section.Title = *in.Title
	}
	if in.Description != nil {
		section.Description = *in.Description
	}
	if in.Active != nil {
		section.Active = *in.Active
	}
	if in.CollegeID != nil {
		if err := s.collegeExists(ctx, *in.CollegeID); err != nil {
			return nil, err
		}
		section.CollegeID = in.CollegeID
	}

	if err := s.db.WithContext(ctx).Save(&section).Error; err != nil {
		return nil, fmt.Errorf("failed to update form section: %w", err)
	}
	return &section, nil
}

// UpdateField applies a partial update by id
func (s *FormService) UpdateField(ctx context.Context, id uint, in UpdateFormFieldInput) (*model.FormField, error) {
	var field model.FormField
	if err := s.db.WithContext(ctx).First(&field, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("form field %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if in.Label != nil {
		if *in.Label == "" {
			return nil, validationErr("label cannot be empty")
		}
		field.Label = *in.Label
	}
	if in.Type != nil {
		field.Type = *in.Type
	}
	if in.IsRequired != nil {
		field.IsRequired = *in.IsRequired
	}
	if in.Order != nil {
		field.Order = *in.Order
	}
	if in.Options != nil {
		optionsJSON, err := json.Marshal(in.Options)
		if err != nil {
			return nil, err
		}
		field.Options = datatypes.JSON(optionsJSON)
	}
	if in.Validation != nil {
		validationJSON, err := json.Marshal(in.Validation)
		if err != nil {
			return nil, err
		}
		field.Validation = datatypes.JSON(validationJSON)
	}

	if err := s.db.WithContext(ctx).Save(&field).Error; err != nil {
		return nil, fmt.Errorf("failed to update form field: %w", err)
	}
	return &field, nil
}

// DeleteSection removes a section with its fields and submissions in
// one transaction
func (s *FormService) DeleteSection(ctx context.Context, id uint) error {
	var section model.FormSection
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("form section %d: %w", id, ErrNotFound)
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_section_id = ?", id).Delete(&model.FormSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_section_id = ?", id).Delete(&model.FormField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
}

// DeleteField removes a single field
func (s *FormService) DeleteField(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.FormField{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("form field %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListSections returns paginated sections with their ordered fields
func (s *FormService) ListSections(ctx context.Context, opts ListFormSectionsOptions) ([]model.FormSection, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.FormSection{})
	if opts.CollegeID != nil {
		query = query.Where("college_id = ?", *opts.CollegeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := clampPaging(opts.Page, opts.Limit)

	var sections []model.FormSection
	err := query.
		Preload("Fields", orderedFields).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&sections).Error
	if err != nil {
		return nil, 0, err
	}
	return sections, total, nil
}

// GetSectionComplete returns a section with ordered fields and its
// submission count
func (s *FormService) GetSectionComplete(ctx context.Context, id uint) (*model.FormSection, int64, error) {
	var section model.FormSection
	err := s.db.WithContext(ctx).
		Preload("Fields", orderedFields).
		First(&section, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("form section %d: %w", id, ErrNotFound)
		}
		return nil, 0, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.FormSubmission{}).
		Where("form_section_id = ?", id).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	return &section, count, nil
}

// ToggleActive flips the visitor-facing acceptance gate
func (s *FormService) ToggleActive(ctx context.Context, id uint) (*model.FormSection, error) {
	var section model.FormSection
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("form section %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	section.Active = !section.Active
	if err := s.db.WithContext(ctx).Save(&section).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle form section: %w", err)
	}
	return &section, nil
}

func (s *FormService) collegeExists(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.College{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("college %d: %w", id, ErrNotFound)
	}
	return nil
}

// orderedFields is the Preload scope keeping fields in display order
func orderedFields(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, id ASC")
}
