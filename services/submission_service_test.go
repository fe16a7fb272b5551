package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/campusworks/collage-api/model"
	"gorm.io/datatypes"
)

func textField(id uint, label string, required bool, bag map[string]interface{}) model.FormField {
	f := model.FormField{
		ID:         id,
		Label:      label,
		Type:       model.FieldTypeText,
		IsRequired: required,
	}
	if bag != nil {
		payload, _ := json.Marshal(bag)
		f.Validation = datatypes.JSON(payload)
	}
	return f
}

func TestValidateSubmissionDataRejectsUnknownFieldID(t *testing.T) {
	fields := []model.FormField{textField(1, "Name", true, nil)}
	data := map[string]interface{}{
		"1":  "Alice",
		"99": "not a field",
	}

	err := validateSubmissionData(fields, data)
	if err == nil {
		t.Fatal("expected unknown field id to be rejected")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestValidateSubmissionDataRequiresRequiredFields(t *testing.T) {
	fields := []model.FormField{
		textField(1, "Name", true, nil),
		textField(2, "Nickname", false, nil),
	}

	// Missing entirely
	if err := validateSubmissionData(fields, map[string]interface{}{}); err == nil {
		t.Error("expected missing required field to fail")
	}

	// Present but empty
	if err := validateSubmissionData(fields, map[string]interface{}{"1": ""}); err == nil {
		t.Error("expected empty required field to fail")
	}

	// Optional field may be absent
	if err := validateSubmissionData(fields, map[string]interface{}{"1": "Alice"}); err != nil {
		t.Errorf("expected optional field to be skippable, got %v", err)
	}
}

func TestValidateSubmissionDataEnforcesLengthBounds(t *testing.T) {
	fields := []model.FormField{
		textField(1, "Question", true, map[string]interface{}{
			"minLength": 10,
			"maxLength": 20,
		}),
	}

	if err := validateSubmissionData(fields, map[string]interface{}{"1": "too short"}); err == nil {
		t.Error("expected value below minLength to fail")
	}
	if err := validateSubmissionData(fields, map[string]interface{}{"1": "this value is far too long for the field"}); err == nil {
		t.Error("expected value above maxLength to fail")
	}
	if err := validateSubmissionData(fields, map[string]interface{}{"1": "just right here"}); err != nil {
		t.Errorf("expected in-bounds value to pass, got %v", err)
	}
}

func TestValidateSubmissionDataIgnoresBoundsOnNonStrings(t *testing.T) {
	fields := []model.FormField{
		textField(1, "Count", true, map[string]interface{}{"minLength": 5}),
	}

	if err := validateSubmissionData(fields, map[string]interface{}{"1": float64(3)}); err != nil {
		t.Errorf("expected numeric value to skip length bounds, got %v", err)
	}
}

func TestFieldLengthBounds(t *testing.T) {
	field := textField(1, "Q", false, map[string]interface{}{
		"minLength": 10,
		"maxLength": 1000,
		model.FAQMarkerKey: true,
	})

	min, max := fieldLengthBounds(field)
	if min != 10 || max != 1000 {
		t.Errorf("expected bounds (10, 1000), got (%d, %d)", min, max)
	}

	// Missing bag means unbounded
	min, max = fieldLengthBounds(textField(2, "Q", false, nil))
	if min != 0 || max != 0 {
		t.Errorf("expected (0, 0) for missing bag, got (%d, %d)", min, max)
	}
}
