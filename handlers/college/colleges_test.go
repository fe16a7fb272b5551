package college

import (
	"encoding/json"
	"testing"
)

func TestCollegeRequestWireKeys(t *testing.T) {
	var create CreateCollegeRequest
	body := `{"name": "Engineering", "type": "college", "universityId": 2}`
	if err := json.Unmarshal([]byte(body), &create); err != nil {
		t.Fatalf("unmarshal create request: %v", err)
	}
	if create.UniversityID == nil || *create.UniversityID != 2 {
		t.Errorf("expected universityId to populate UniversityID, got %v", create.UniversityID)
	}

	var update UpdateCollegeRequest
	body = `{"universityId": 4, "galleryImages": ["https://cdn.example.com/a.jpg"]}`
	if err := json.Unmarshal([]byte(body), &update); err != nil {
		t.Fatalf("unmarshal update request: %v", err)
	}
	if update.UniversityID == nil || *update.UniversityID != 4 {
		t.Errorf("expected universityId to populate UniversityID, got %v", update.UniversityID)
	}
	if len(update.GalleryImages) != 1 {
		t.Errorf("expected galleryImages to populate GalleryImages, got %v", update.GalleryImages)
	}
}
