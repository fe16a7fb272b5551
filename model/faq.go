package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults used when a college has no stored FAQ aggregate yet.
const (
	DefaultFAQTitle       = "Frequently Asked Questions"
	DefaultFAQDescription = "Answers to common questions"
)

// FAQItem is one published question/answer entry. IDs are generated by
// the application (timestamp plus random suffix), not by the database.
type FAQItem struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FAQData is the aggregate stored whole in the college's faq jsonb
// column. Version is an optimistic-concurrency token compared on write.
type FAQData struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LastUpdated time.Time `json:"last_updated"`
	Version     int       `json:"version"`
	Items       []FAQItem `json:"items"`
}

// FAQImportItem is one externally supplied question/answer pair.
type FAQImportItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DefaultFAQ returns the unpersisted empty aggregate served when a
// college has no stored FAQ yet.
func DefaultFAQ() FAQData {
	return FAQData{
		Title:       DefaultFAQTitle,
		Description: DefaultFAQDescription,
		LastUpdated: time.Now().UTC(),
		Items:       []FAQItem{},
	}
}

// NewFAQItemID generates an item id unique within any realistic list.
func NewFAQItemID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// AddItem appends a new item. Order defaults to the current item count
// when nil. Returns the created item.
func (f *FAQData) AddItem(question, answer string, order *int) FAQItem {
	now := time.Now().UTC()
	item := FAQItem{
		ID:        NewFAQItemID(),
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		Order:     len(f.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if order != nil {
		item.Order = *order
	}
	f.Items = append(f.Items, item)
	f.LastUpdated = now
	return item
}

// UpdateItem merges only the supplied fields into the item with the
// given id and stamps its updated_at. Returns false if the id is absent.
func (f *FAQData) UpdateItem(id string, question, answer *string, order *int) bool {
	for i := range f.Items {
		if f.Items[i].ID != id {
			continue
		}
		if question != nil {
			f.Items[i].Question = strings.TrimSpace(*question)
		}
		if answer != nil {
			f.Items[i].Answer = strings.TrimSpace(*answer)
		}
		if order != nil {
			f.Items[i].Order = *order
		}
		now := time.Now().UTC()
		f.Items[i].UpdatedAt = now
		f.LastUpdated = now
		return true
	}
	return false
}

// RemoveItem filters the item with the given id out of the list.
// Returns false if the id is absent, in which case the list is untouched.
func (f *FAQData) RemoveItem(id string) bool {
	for i := range f.Items {
		if f.Items[i].ID == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			f.LastUpdated = time.Now().UTC()
			return true
		}
	}
	return false
}

// Replace overwrites title, description and items wholesale.
func (f *FAQData) Replace(title, description string, items []FAQItem) {
	f.Title = title
	f.Description = description
	if items == nil {
		items = []FAQItem{}
	}
	f.Items = items
	f.LastUpdated = time.Now().UTC()
}

// Import bulk-appends question/answer pairs with sequential order values
// continuing from the current list length.
func (f *FAQData) Import(pairs []FAQImportItem) []FAQItem {
	now := time.Now().UTC()
	start := len(f.Items)
	created := make([]FAQItem, 0, len(pairs))
	for i, p := range pairs {
		item := FAQItem{
			ID:        NewFAQItemID(),
			Question:  strings.TrimSpace(p.Question),
			Answer:    strings.TrimSpace(p.Answer),
			Order:     start + i,
			CreatedAt: now,
			UpdatedAt: now,
		}
		f.Items = append(f.Items, item)
		created = append(created, item)
	}
	f.LastUpdated = now
	return created
}

// Sort orders items ascending by their order value, ties broken by
// creation time. Storage order is not the display order.
func (f *FAQData) Sort() {
	sort.SliceStable(f.Items, func(i, j int) bool {
		if f.Items[i].Order != f.Items[j].Order {
			return f.Items[i].Order < f.Items[j].Order
		}
		return f.Items[i].CreatedAt.Before(f.Items[j].CreatedAt)
	})
}
