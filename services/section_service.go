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

// SectionService manages ordered, typed content blocks on college pages.
type SectionService struct {
	db *gorm.DB
}

// NewSectionService creates a new section service
func NewSectionService(db *gorm.DB) *SectionService {
	return &SectionService{db: db}
}

// SectionSpec describes one section to create. Order nil means "use the
// array index" during bulk creation.
type SectionSpec struct {
	Title       string                 `json:"title"`
	SectionType string                 `json:"sectionType"`
	Content     string                 `json:"content"`
	Order       *int                   `json:"order"`
	Settings    map[string]interface{} `json:"settings"`
}

// SectionOrder is one {id, order} pair for reordering
type SectionOrder struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

// UpdateSectionInput is a partial update, nil fields are untouched
type UpdateSectionInput struct {
	Title    *string
	Content  *string
	Order    *int
	Settings map[string]interface{}
}

// Create creates a single section
func (s *SectionService) Create(ctx context.Context, collegeID uint, spec SectionSpec) (*model.Section, error) {
	switch {
	case spec.Title == "":
		return nil, validationErr("title is required")
	case spec.SectionType == "":
		return nil, validationErr("sectionType is required")
	case collegeID == 0:
		return nil, validationErr("collegeId is required")
	}

	if err := s.collegeExists(ctx, collegeID); err != nil {
		return nil, err
	}

	section, err := sectionFromSpec(collegeID, spec, 0)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(section).Error; err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return section, nil
}

// BulkCreate creates all given sections in one transaction. Order comes
// from each spec or falls back to its array index.
func (s *SectionService) BulkCreate(ctx context.Context, collegeID uint, specs []SectionSpec) ([]model.Section, error) {
	if len(specs) == 0 {
		return nil, validationErr("sections are required")
	}
	if err := s.collegeExists(ctx, collegeID); err != nil {
		return nil, err
	}

	sections := make([]model.Section, 0, len(specs))
	for i, spec := range specs {
		if spec.Title == "" || spec.SectionType == "" {
			return nil, validationErr("section %d is missing title or sectionType", i)
		}
		section, err := sectionFromSpec(collegeID, spec, i)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *section)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&sections).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bulk create sections: %w", err)
	}
	return sections, nil
}

// BulkDelete removes the given sections after verifying every id belongs
// to the target college. Any mismatch rejects the whole batch.
func (s *SectionService) BulkDelete(ctx context.Context, collegeID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, validationErr("sectionIds are required")
	}

	if err := s.verifyOwnership(ctx, collegeID, ids); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ? AND college_id = ?", ids, collegeID).Delete(&model.Section{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete sections: %w", err)
	}
	return deleted, nil
}

// Reorder applies the given {id, order} pairs in one transaction after
// verifying ownership, then returns the fresh list sorted by order.
func (s *SectionService) Reorder(ctx context.Context, collegeID uint, orders []SectionOrder) ([]model.Section, error) {
	if len(orders) == 0 {
		return nil, validationErr("sectionOrders are required")
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	if err := s.verifyOwnership(ctx, collegeID, ids); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Model(&model.Section{}).
				Where("id = ? AND college_id = ?", o.ID, collegeID).
				Update("display_order", o.Order)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder sections: %w", err)
	}

	return s.List(ctx, collegeID)
}

// Update applies a partial update by id
func (s *SectionService) Update(ctx context.Context, id uint, in UpdateSectionInput) (*model.Section, error) {
	var section model.Section
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, validationErr("title cannot be empty")
		}
		section.Title = *in.Title
	}
	if in.Content != nil {
		section.Content = *in.Content
	}
	if in.Order != nil {
		section.Order = *in.Order
	}
	if in.Settings != nil {
		settingsJSON, err := json.Marshal(in.Settings)
		if err != nil {
			return nil, err
		}
		section.Settings = datatypes.JSON(settingsJSON)
	}

	if err := s.db.WithContext(ctx).Save(&section).Error; err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	return &section, nil
}

// Delete removes a single section
func (s *SectionService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Section{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("section %d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns all sections of a college sorted by display order
func (s *SectionService) List(ctx context.Context, collegeID uint) ([]model.Section, error) {
	var sections []model.Section
	err := s.db.WithContext(ctx).
		Where("college_id = ?", collegeID).
		Order("display_order ASC, id ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// verifyOwnership is the count-match check: every id must resolve to a
// live section of the target college or the whole batch is rejected.
func (s *SectionService) verifyOwnership(ctx context.Context, collegeID uint, ids []uint) error {
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&model.Section{}).
		Where("id IN ? AND college_id = ?", ids, collegeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != int64(len(unique)) {
		return fmt.Errorf("%d of %d sections do not belong to college %d: %w",
			int64(len(unique))-count, len(unique), collegeID, ErrForbidden)
	}
	return nil
}

func (s *SectionService) collegeExists(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.College{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("college %d: %w", id, ErrNotFound)
	}
	return nil
}

func sectionFromSpec(collegeID uint, spec SectionSpec, index int) (*model.Section, error) {
	section := &model.Section{
		CollegeID:   collegeID,
		Title:       spec.Title,
		SectionType: spec.SectionType,
		Content:     spec.Content,
		Order:       index,
	}
	if spec.Order != nil {
		section.Order = *spec.Order
	}
	settings := spec.Settings
	if settings == nil {
		settings = map[string]interface{}{}
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	section.Settings = datatypes.JSON(settingsJSON)
	return section, nil
}
