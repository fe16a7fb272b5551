package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/campusworks/collage-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionService accepts visitor-submitted answer sets and persists
// them linked to their form section and college.
type SubmissionService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(db *gorm.DB, audit *AuditService) *SubmissionService {
	return &SubmissionService{db: db, audit: audit}
}

// SubmitInput carries one visitor submission
type SubmitInput struct {
	FormSectionID uint
	CollegeID     uint
	Data          map[string]interface{}
}

// ListSubmissionsOptions filters and paginates submission listings
type ListSubmissionsOptions struct {
	FormSectionID *uint
	CollegeID     *uint
	Page          int
	Limit         int
}

// Submit validates the answer set against the section's field list and
// persists it. The stored payload is the submitted mapping verbatim.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*model.FormSubmission, error) {
	switch {
	case in.Data == nil:
		return nil, validationErr("data is required")
	case in.FormSectionID == 0:
		return nil, validationErr("formSectionId is required")
	case in.CollegeID == 0:
		return nil, validationErr("collegeId is required")
	}

	var section model.FormSection
	err := s.db.WithContext(ctx).
		Preload("Fields", orderedFields).
		First(&section, in.FormSectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("form section %d: %w", in.FormSectionID, ErrNotFound)
		}
		return nil, err
	}
	if !section.Active {
		return nil, validationErr("form is not accepting submissions")
	}

	var college model.College
	if err := s.db.WithContext(ctx).Select("id").First(&college, in.CollegeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("college %d: %w", in.CollegeID, ErrNotFound)
		}
		return nil, err
	}

	if err := validateSubmissionData(section.Fields, in.Data); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission data: %w", err)
	}

	submission := model.FormSubmission{
		FormSectionID: in.FormSectionID,
		CollegeID:     in.CollegeID,
		Data:          datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	// Audit is best-effort, a logging failure must not fail the submission
	s.audit.Record(ctx, model.AuditActionSubmit, "form_submission", &submission.ID, nil, map[string]interface{}{
		"form_section_id": in.FormSectionID,
		"college_id":      in.CollegeID,
	})

	var full model.FormSubmission
	err = s.db.WithContext(ctx).
		Preload("FormSection.Fields", orderedFields).
		Preload("College").
		First(&full, submission.ID).Error
	if err != nil {
		return &submission, nil
	}
	return &full, nil
}

// List returns submissions newest-first with pagination
func (s *SubmissionService) List(ctx context.Context, opts ListSubmissionsOptions) ([]model.FormSubmission, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.FormSubmission{})
	if opts.FormSectionID != nil {
		query = query.Where("form_section_id = ?", *opts.FormSectionID)
	}
	if opts.CollegeID != nil {
		query = query.Where("college_id = ?", *opts.CollegeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := clampPaging(opts.Page, opts.Limit)

	var submissions []model.FormSubmission
	err := query.
		Preload("FormSection").
		Order("submitted_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// Delete removes a submission by id
func (s *SubmissionService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.FormSubmission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("submission %d: %w", id, ErrNotFound)
	}
	return nil
}

// validateSubmissionData checks the answer set against the declared
// field list: required fields present and non-empty, no unknown field
// ids, string values within minLength/maxLength from the validation bag.
func validateSubmissionData(fields []model.FormField, data map[string]interface{}) error {
	known := make(map[string]model.FormField, len(fields))
	for _, f := range fields {
		known[strconv.FormatUint(uint64(f.ID), 10)] = f
	}

	for key := range data {
		if _, ok := known[key]; !ok {
			return validationErr("unknown field id %q", key)
		}
	}

	for key, field := range known {
		value, present := data[key]
		str, isString := value.(string)

		if field.IsRequired {
			if !present || value == nil || (isString && str == "") {
				return validationErr("field %q (%s) is required", field.Label, key)
			}
		}
		if !present || !isString {
			continue
		}

		min, max := fieldLengthBounds(field)
		if min > 0 && len(str) < min {
			return validationErr("field %q must be at least %d characters", field.Label, min)
		}
		if max > 0 && len(str) > max {
			return validationErr("field %q must be at most %d characters", field.Label, max)
		}
	}
	return nil
}

// fieldLengthBounds reads minLength/maxLength out of the validation bag,
// zero means unbounded
func fieldLengthBounds(field model.FormField) (int, int) {
	if len(field.Validation) == 0 {
		return 0, 0
	}
	var bag map[string]interface{}
	if err := json.Unmarshal(field.Validation, &bag); err != nil {
		return 0, 0
	}
	return intFromBag(bag, "minLength"), intFromBag(bag, "maxLength")
}

func intFromBag(bag map[string]interface{}, key string) int {
	if v, ok := bag[key].(float64); ok {
		return int(v)
	}
	return 0
}
