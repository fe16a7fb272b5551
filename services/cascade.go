package services

import (
	"github.com/campusworks/collage-api/model"
	"gorm.io/gorm"
)

// CascadeDeleteCollege removes a college and everything hanging off it:
// submissions, form fields, form sections, page sections, programs.
// Users pointing at the college are detached, not deleted. Meant to run
// inside a caller-owned transaction so multi-college cascades stay
// atomic.
func CascadeDeleteCollege(tx *gorm.DB, collegeID uint) error {
	if err := tx.Where("college_id = ?", collegeID).Delete(&model.FormSubmission{}).Error; err != nil {
		return err
	}
	if err := tx.Where("form_section_id IN (?)",
		tx.Model(&model.FormSection{}).Select("id").Where("college_id = ?", collegeID),
	).Delete(&model.FormField{}).Error; err != nil {
		return err
	}
	if err := tx.Where("college_id = ?", collegeID).Delete(&model.FormSection{}).Error; err != nil {
		return err
	}
	if err := tx.Where("college_id = ?", collegeID).Delete(&model.Section{}).Error; err != nil {
		return err
	}
	if err := tx.Where("college_id = ?", collegeID).Delete(&model.Program{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.User{}).Where("college_id = ?", collegeID).
		Update("college_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&model.College{}, collegeID).Error
}
