package services

import (
	"context"
	"testing"

	"github.com/campusworks/collage-api/model"
	"gorm.io/gorm"
)

func TestCascadeDeleteCollegeRemovesChildren(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	college := createTestCollege(t, db, "cascade-college")

	// Hang one of each child type off the college
	if _, err := NewSectionService(db).Create(ctx, college.ID, SectionSpec{
		Title:       "Hero",
		SectionType: model.SectionTypeHero,
	}); err != nil {
		t.Fatal(err)
	}
	program := model.Program{CollegeID: college.ID, Name: "BTech", Slug: "cascade-btech"}
	if err := db.Create(&program).Error; err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Unscoped().Delete(&program) })

	formSvc := NewFormService(db)
	section, err := formSvc.CreateSection(ctx, CreateFormSectionInput{
		Title:     "Admissions",
		CollegeID: &college.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := formSvc.CreateField(ctx, CreateFormFieldInput{
		FormSectionID: section.ID,
		Label:         "Your question",
		Type:          model.FieldTypeText,
	}); err != nil {
		t.Fatal(err)
	}
	submission := model.FormSubmission{
		FormSectionID: section.ID,
		CollegeID:     college.ID,
		Data:          []byte(`{}`),
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatal(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return CascadeDeleteCollege(tx, college.ID)
	})
	if err != nil {
		t.Fatal(err)
	}

	survivors := []struct {
		name  string
		model interface{}
		where string
		arg   uint
	}{
		{"college", &model.College{}, "id = ?", college.ID},
		{"sections", &model.Section{}, "college_id = ?", college.ID},
		{"programs", &model.Program{}, "college_id = ?", college.ID},
		{"form sections", &model.FormSection{}, "college_id = ?", college.ID},
		{"form fields", &model.FormField{}, "form_section_id = ?", section.ID},
		{"submissions", &model.FormSubmission{}, "college_id = ?", college.ID},
	}
	for _, s := range survivors {
		var count int64
		if err := db.Model(s.model).Where(s.where, s.arg).Count(&count).Error; err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("expected no %s to survive the cascade, found %d", s.name, count)
		}
	}
}
