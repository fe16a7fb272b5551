package college

import (
	"encoding/json"
	"testing"
)

func TestSectionRequestWireKeys(t *testing.T) {
	var create CreateSectionRequest
	body := `{"collegeId": 7, "title": "Hero", "sectionType": "hero", "order": 2}`
	if err := json.Unmarshal([]byte(body), &create); err != nil {
		t.Fatalf("unmarshal create request: %v", err)
	}
	if create.CollegeID != 7 {
		t.Errorf("expected collegeId to populate CollegeID, got %d", create.CollegeID)
	}
	if create.SectionType != "hero" {
		t.Errorf("expected sectionType to populate SectionType, got %q", create.SectionType)
	}
	if create.Order == nil || *create.Order != 2 {
		t.Errorf("expected order 2, got %v", create.Order)
	}

	var bulkDelete BulkDeleteSectionsRequest
	if err := json.Unmarshal([]byte(`{"sectionIds": [1, 2, 3]}`), &bulkDelete); err != nil {
		t.Fatalf("unmarshal bulk delete request: %v", err)
	}
	if len(bulkDelete.SectionIDs) != 3 {
		t.Errorf("expected sectionIds to populate SectionIDs, got %v", bulkDelete.SectionIDs)
	}

	var reorder ReorderSectionsRequest
	if err := json.Unmarshal([]byte(`{"sectionOrders": [{"id": 4, "order": 0}]}`), &reorder); err != nil {
		t.Fatalf("unmarshal reorder request: %v", err)
	}
	if len(reorder.SectionOrders) != 1 || reorder.SectionOrders[0].ID != 4 {
		t.Errorf("expected sectionOrders to populate SectionOrders, got %v", reorder.SectionOrders)
	}
}
