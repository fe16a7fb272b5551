package form

import (
	"encoding/json"
	"testing"
)

func TestFormRequestWireKeys(t *testing.T) {
	var section CreateFormSectionRequest
	if err := json.Unmarshal([]byte(`{"title": "Contact", "collegeId": 5}`), &section); err != nil {
		t.Fatalf("unmarshal form section request: %v", err)
	}
	if section.CollegeID == nil || *section.CollegeID != 5 {
		t.Errorf("expected collegeId to populate CollegeID, got %v", section.CollegeID)
	}

	var field CreateFormFieldRequest
	body := `{"formSectionId": 9, "label": "Email", "type": "email", "isRequired": true}`
	if err := json.Unmarshal([]byte(body), &field); err != nil {
		t.Fatalf("unmarshal form field request: %v", err)
	}
	if field.FormSectionID != 9 {
		t.Errorf("expected formSectionId to populate FormSectionID, got %d", field.FormSectionID)
	}
	if !field.IsRequired {
		t.Error("expected isRequired to populate IsRequired")
	}

	var submit SubmitRequest
	if err := json.Unmarshal([]byte(`{"collegeId": 3, "data": {"1": "hi"}}`), &submit); err != nil {
		t.Fatalf("unmarshal submit request: %v", err)
	}
	if submit.CollegeID != 3 {
		t.Errorf("expected collegeId to populate CollegeID, got %d", submit.CollegeID)
	}
	if submit.Data["1"] != "hi" {
		t.Errorf("expected data map to round-trip, got %v", submit.Data)
	}
}
