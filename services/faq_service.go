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

// Approval actions for intake submissions
const (
	FAQActionApprove = "approve"
	FAQActionReject  = "reject"
)

// faqWriteAttempts bounds the optimistic-concurrency retry loop. The
// aggregate is read-modify-written whole; the version token inside the
// jsonb document is compared on write so concurrent writers cannot lose
// each other's updates.
const faqWriteAttempts = 3

// intakeMarkerPredicate selects submissions whose section carries at
// least one field tagged with the structural FAQ intake marker.
const intakeMarkerPredicate = `EXISTS (
	SELECT 1 FROM form_fields ff
	WHERE ff.form_section_id = form_submissions.form_section_id
	  AND ff.deleted_at IS NULL
	  AND (ff.validation ->> 'FAQ')::boolean IS TRUE
)`

// FAQService maintains the published question/answer aggregate per
// college and the intake workflow promoting submissions into it.
type FAQService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewFAQService creates a new FAQ service
func NewFAQService(db *gorm.DB, audit *AuditService) *FAQService {
	return &FAQService{db: db, audit: audit}
}

// Get returns the stored aggregate, or the unpersisted default when the
// college has none yet.
func (s *FAQService) Get(ctx context.Context, collegeID uint) (*model.FAQData, error) {
	faq, err := s.load(s.db.WithContext(ctx), collegeID)
	if err != nil {
		return nil, err
	}
	faq.Sort()
	return faq, nil
}

// Replace overwrites title, description and items wholesale
func (s *FAQService) Replace(ctx context.Context, collegeID uint, title, description string, items []model.FAQItem) (*model.FAQData, error) {
	return s.mutate(ctx, collegeID, func(faq *model.FAQData) error {
		faq.Replace(title, description, items)
		return nil
	})
}

// AddItem appends one published item. Question and answer are required,
// order defaults to the current item count.
func (s *FAQService) AddItem(ctx context.Context, collegeID uint, question, answer string, order *int) (*model.FAQData, error) {
	if question == "" {
		return nil, validationErr("question is required")
	}
	if answer == "" {
		return nil, validationErr("answer is required")
	}
	return s.mutate(ctx, collegeID, func(faq *model.FAQData) error {
		faq.AddItem(question, answer, order)
		return nil
	})
}

// UpdateItem merges the supplied fields into the item with the given id
func (s *FAQService) UpdateItem(ctx context.Context, collegeID uint, itemID string, question, answer *string, order *int) (*model.FAQData, error) {
	return s.mutate(ctx, collegeID, func(faq *model.FAQData) error {
		if !faq.UpdateItem(itemID, question, answer, order) {
			return fmt.Errorf("faq item %s: %w", itemID, ErrNotFound)
		}
		return nil
	})
}

// DeleteItem removes the item with the given id. A missing id is an
// error and leaves the aggregate untouched.
func (s *FAQService) DeleteItem(ctx context.Context, collegeID uint, itemID string) (*model.FAQData, error) {
	return s.mutate(ctx, collegeID, func(faq *model.FAQData) error {
		if !faq.RemoveItem(itemID) {
			return fmt.Errorf("faq item %s: %w", itemID, ErrNotFound)
		}
		return nil
	})
}

// Import bulk-appends question/answer pairs. Every pair must carry a
// non-empty question and answer or the whole batch is rejected before
// any write.
func (s *FAQService) Import(ctx context.Context, collegeID uint, pairs []model.FAQImportItem) (*model.FAQData, error) {
	if len(pairs) == 0 {
		return nil, validationErr("items are required")
	}
	for i, p := range pairs {
		if p.Question == "" || p.Answer == "" {
			return nil, validationErr("item %d is missing question or answer", i)
		}
	}
	return s.mutate(ctx, collegeID, func(faq *model.FAQData) error {
		faq.Import(pairs)
		return nil
	})
}

// GenerateIntakeForm creates a form section collecting visitor
// questions, one textarea field per supplied question, each tagged with
// the structural FAQ marker.
func (s *FAQService) GenerateIntakeForm(ctx context.Context, collegeID uint, collegeName string, questions []string) (*model.FormSection, error) {
	if collegeName == "" {
		return nil, validationErr("collegeName is required")
	}
	if len(questions) == 0 {
		return nil, validationErr("questions are required")
	}
	for i, q := range questions {
		if q == "" {
			return nil, validationErr("question %d is empty", i)
		}
	}

	var college model.College
	if err := s.db.WithContext(ctx).Select("id").First(&college, collegeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("college %d: %w", collegeID, ErrNotFound)
		}
		return nil, err
	}

	marker, err := json.Marshal(map[string]interface{}{
		model.FAQMarkerKey: true,
		"minLength":        10,
		"maxLength":        1000,
	})
	if err != nil {
		return nil, err
	}

	section := model.FormSection{
		CollegeID:   &collegeID,
		Title:       fmt.Sprintf("%s FAQ Intake", collegeName),
		Description: "Questions collected for the published FAQ",
		Active:      true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&section).Error; err != nil {
			return err
		}
		fields := make([]model.FormField, 0, len(questions))
		for i, q := range questions {
			fields = append(fields, model.FormField{
				FormSectionID: section.ID,
				Label:         q,
				Type:          model.FieldTypeTextarea,
				IsRequired:    true,
				Validation:    datatypes.JSON(marker),
				Order:         i,
			})
		}
		return tx.Create(&fields).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate intake form: %w", err)
	}

	var full model.FormSection
	if err := s.db.WithContext(ctx).Preload("Fields", orderedFields).First(&full, section.ID).Error; err != nil {
		return &section, nil
	}
	return &full, nil
}

// ProcessSubmission approves or rejects an intake submission. Rejection
// deletes the submission. Approval pairs each submitted field value (the
// visitor's question) with the caller-supplied answer for that field,
// appends all resulting items to the college's aggregate and deletes the
// submission, all in one transaction.
func (s *FAQService) ProcessSubmission(ctx context.Context, collegeID, submissionID uint, action string, answers map[string]string) (*model.FAQData, error) {
	if action != FAQActionApprove && action != FAQActionReject {
		return nil, validationErr("action must be approve or reject")
	}

	var submission model.FormSubmission
	err := s.db.WithContext(ctx).
		Preload("FormSection.Fields", orderedFields).
		First(&submission, submissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", submissionID, ErrNotFound)
		}
		return nil, err
	}
	if submission.CollegeID != collegeID {
		return nil, fmt.Errorf("submission %d does not belong to college %d: %w", submissionID, collegeID, ErrForbidden)
	}

	if action == FAQActionReject {
		if err := s.db.WithContext(ctx).Delete(&model.FormSubmission{}, submissionID).Error; err != nil {
			return nil, err
		}
		s.audit.Record(ctx, model.AuditActionReject, "form_submission", &submissionID, nil, nil)
		return nil, nil
	}

	if len(answers) == 0 {
		return nil, validationErr("answers are required to approve")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(submission.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode submission data: %w", err)
	}

	// Field id joins the visitor's question text with the admin's answer
	type pair struct{ question, answer string }
	pairs := make([]pair, 0, len(submission.FormSection.Fields))
	for _, field := range submission.FormSection.Fields {
		key := strconv.FormatUint(uint64(field.ID), 10)
		question, _ := data[key].(string)
		answer := answers[key]
		if question == "" || answer == "" {
			continue
		}
		pairs = append(pairs, pair{question: question, answer: answer})
	}
	if len(pairs) == 0 {
		return nil, validationErr("answers do not match any submitted field")
	}

	var result *model.FAQData
	for attempt := 0; attempt < faqWriteAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			faq, err := s.load(tx, collegeID)
			if err != nil {
				return err
			}
			for _, p := range pairs {
				faq.AddItem(p.question, p.answer, nil)
			}
			if err := s.store(tx, collegeID, faq); err != nil {
				return err
			}
			if err := tx.Delete(&model.FormSubmission{}, submissionID).Error; err != nil {
				return err
			}
			result = faq
			return nil
		})
		if err == nil {
			s.audit.Record(ctx, model.AuditActionApprove, "form_submission", &submissionID, nil, map[string]interface{}{
				"college_id":  collegeID,
				"items_added": len(pairs),
			})
			return result, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("faq aggregate for college %d kept changing: %w", collegeID, ErrConflict)
}

// CountIntakeSubmissions counts pending submissions on sections carrying
// the structural FAQ marker
func (s *FAQService) CountIntakeSubmissions(ctx context.Context, collegeID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.FormSubmission{}).
		Where("college_id = ?", collegeID).
		Where(intakeMarkerPredicate).
		Count(&count).Error
	return count, err
}

// ListIntakeSubmissions lists pending intake submissions newest-first
func (s *FAQService) ListIntakeSubmissions(ctx context.Context, collegeID uint, page, limit int) ([]model.FormSubmission, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.FormSubmission{}).
		Where("college_id = ?", collegeID).
		Where(intakeMarkerPredicate)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = clampPaging(page, limit)

	var submissions []model.FormSubmission
	err := query.
		Preload("FormSection.Fields", orderedFields).
		Order("submitted_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// mutate runs one read-modify-write cycle with bounded retries on
// version conflicts
func (s *FAQService) mutate(ctx context.Context, collegeID uint, fn func(*model.FAQData) error) (*model.FAQData, error) {
	db := s.db.WithContext(ctx)
	for attempt := 0; attempt < faqWriteAttempts; attempt++ {
		faq, err := s.load(db, collegeID)
		if err != nil {
			return nil, err
		}
		if err := fn(faq); err != nil {
			return nil, err
		}
		err = s.store(db, collegeID, faq)
		if err == nil {
			faq.Sort()
			return faq, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("faq aggregate for college %d kept changing: %w", collegeID, ErrConflict)
}

// load reads the aggregate for a college, returning the default when
// the column is empty. The college itself must exist.
func (s *FAQService) load(db *gorm.DB, collegeID uint) (*model.FAQData, error) {
	var college model.College
	if err := db.Select("id", "faq").First(&college, collegeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("college %d: %w", collegeID, ErrNotFound)
		}
		return nil, err
	}

	faq := model.DefaultFAQ()
	if len(college.FAQ) > 0 {
		if err := json.Unmarshal(college.FAQ, &faq); err != nil {
			return nil, fmt.Errorf("failed to decode faq aggregate: %w", err)
		}
		if faq.Items == nil {
			faq.Items = []model.FAQItem{}
		}
	}
	return &faq, nil
}

// store writes the aggregate back, bumping the version and comparing the
// previous one in the WHERE clause. Zero rows affected means a
// concurrent writer got there first.
func (s *FAQService) store(db *gorm.DB, collegeID uint, faq *model.FAQData) error {
	prev := faq.Version
	faq.Version = prev + 1

	payload, err := json.Marshal(faq)
	if err != nil {
		faq.Version = prev
		return err
	}

	res := db.Model(&model.College{}).
		Where("id = ? AND COALESCE((faq->>'version')::int, 0) = ?", collegeID, prev).
		Update("faq", datatypes.JSON(payload))
	if res.Error != nil {
		faq.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		faq.Version = prev
		return fmt.Errorf("version %d superseded: %w", prev, ErrConflict)
	}
	return nil
}
