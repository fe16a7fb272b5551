package model

import (
	"encoding/json"
	"testing"
)

func TestDefaultFAQIsEmpty(t *testing.T) {
	faq := DefaultFAQ()

	if faq.Title != DefaultFAQTitle {
		t.Errorf("expected default title %q, got %q", DefaultFAQTitle, faq.Title)
	}
	if faq.Items == nil {
		t.Fatal("expected items to be an empty slice, got nil")
	}
	if len(faq.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(faq.Items))
	}
	if faq.Version != 0 {
		t.Errorf("expected version 0, got %d", faq.Version)
	}

	// The serialized form must carry an empty array, not null
	payload, err := json.Marshal(faq)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatal(err)
	}
	items, ok := decoded["items"].([]interface{})
	if !ok {
		t.Fatalf("expected items to serialize as an array, got %T", decoded["items"])
	}
	if len(items) != 0 {
		t.Errorf("expected empty items array, got %d entries", len(items))
	}
}

func TestAddItemGrowsByOneWithDefaultOrder(t *testing.T) {
	faq := DefaultFAQ()

	first := faq.AddItem("What are the admission requirements?", "See the admissions page.", nil)
	if len(faq.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(faq.Items))
	}
	if first.Order != 0 {
		t.Errorf("expected first item order 0, got %d", first.Order)
	}

	second := faq.AddItem("Is there a hostel?", "Yes, on campus.", nil)
	if len(faq.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(faq.Items))
	}
	if second.Order != 1 {
		t.Errorf("expected second item order to equal prior count 1, got %d", second.Order)
	}
	if first.ID == second.ID {
		t.Error("expected unique item ids")
	}
}

func TestAddItemHonorsExplicitOrder(t *testing.T) {
	faq := DefaultFAQ()
	order := 42

	item := faq.AddItem("Q", "A", &order)
	if item.Order != 42 {
		t.Errorf("expected explicit order 42, got %d", item.Order)
	}
}

func TestAddItemTrimsWhitespace(t *testing.T) {
	faq := DefaultFAQ()

	item := faq.AddItem("  How do I apply?  ", "  Online.  ", nil)
	if item.Question != "How do I apply?" {
		t.Errorf("expected trimmed question, got %q", item.Question)
	}
	if item.Answer != "Online." {
		t.Errorf("expected trimmed answer, got %q", item.Answer)
	}
}

func TestUpdateItemMergesOnlySuppliedFields(t *testing.T) {
	faq := DefaultFAQ()
	item := faq.AddItem("Original question", "Original answer", nil)

	newAnswer := "Updated answer"
	if !faq.UpdateItem(item.ID, nil, &newAnswer, nil) {
		t.Fatal("expected update to find the item")
	}

	updated := faq.Items[0]
	if updated.Question != "Original question" {
		t.Errorf("question should be untouched, got %q", updated.Question)
	}
	if updated.Answer != "Updated answer" {
		t.Errorf("expected updated answer, got %q", updated.Answer)
	}
}

func TestUpdateItemMissingIDReturnsFalse(t *testing.T) {
	faq := DefaultFAQ()
	faq.AddItem("Q", "A", nil)
	before := faq.Items[0]

	q := "changed"
	if faq.UpdateItem("no-such-id", &q, nil, nil) {
		t.Fatal("expected update of missing id to return false")
	}
	if faq.Items[0] != before {
		t.Error("expected aggregate to be untouched after failed update")
	}
}

func TestRemoveItem(t *testing.T) {
	faq := DefaultFAQ()
	first := faq.AddItem("Q1", "A1", nil)
	second := faq.AddItem("Q2", "A2", nil)

	if !faq.RemoveItem(first.ID) {
		t.Fatal("expected removal to succeed")
	}
	if len(faq.Items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(faq.Items))
	}
	if faq.Items[0].ID != second.ID {
		t.Error("removed the wrong item")
	}
}

func TestRemoveItemMissingIDLeavesAggregateUntouched(t *testing.T) {
	faq := DefaultFAQ()
	faq.AddItem("Q1", "A1", nil)
	faq.AddItem("Q2", "A2", nil)

	if faq.RemoveItem("no-such-id") {
		t.Fatal("expected removal of missing id to return false")
	}
	if len(faq.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(faq.Items))
	}
}

func TestReplaceRoundTrips(t *testing.T) {
	faq := DefaultFAQ()
	faq.AddItem("Old", "Old", nil)

	items := []FAQItem{
		{ID: "a", Question: "Q1", Answer: "A1", Order: 0},
		{ID: "b", Question: "Q2", Answer: "A2", Order: 1},
	}
	faq.Replace("New Title", "New Description", items)

	if faq.Title != "New Title" || faq.Description != "New Description" {
		t.Errorf("title/description not replaced: %q %q", faq.Title, faq.Description)
	}
	if len(faq.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(faq.Items))
	}
	if faq.Items[0].ID != "a" || faq.Items[1].ID != "b" {
		t.Error("items not replaced in order")
	}
}

func TestReplaceWithNilItemsYieldsEmptyList(t *testing.T) {
	faq := DefaultFAQ()
	faq.AddItem("Q", "A", nil)

	faq.Replace("T", "D", nil)
	if faq.Items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(faq.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(faq.Items))
	}
}

func TestImportAssignsSequentialOrders(t *testing.T) {
	faq := DefaultFAQ()
	faq.AddItem("Existing", "Answer", nil)

	created := faq.Import([]FAQImportItem{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
		{Question: "Q3", Answer: "A3"},
	})

	if len(created) != 3 {
		t.Fatalf("expected 3 created items, got %d", len(created))
	}
	if len(faq.Items) != 4 {
		t.Fatalf("expected 4 items total, got %d", len(faq.Items))
	}
	for i, item := range created {
		want := 1 + i
		if item.Order != want {
			t.Errorf("item %d: expected order %d, got %d", i, want, item.Order)
		}
	}
}

func TestSortOrdersByOrderThenCreation(t *testing.T) {
	faq := DefaultFAQ()
	o2, o0, o1 := 2, 0, 1
	faq.AddItem("third", "A", &o2)
	faq.AddItem("first", "A", &o0)
	faq.AddItem("second", "A", &o1)

	faq.Sort()

	got := []string{faq.Items[0].Question, faq.Items[1].Question, faq.Items[2].Question}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNewFAQItemIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewFAQItemID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
