package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/campusworks/collage-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// integrationDB connects to the test database and migrates the schema.
// Gated behind RUN_INTEGRATION_TESTS like the rest of the suite.
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		getEnvOrDefault("TEST_DB_HOST", "localhost"),
		getEnvOrDefault("TEST_DB_USER", "postgres"),
		getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		getEnvOrDefault("TEST_DB_NAME", "collage_test"),
		getEnvOrDefault("TEST_DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.University{},
		&model.College{},
		&model.Section{},
		&model.Program{},
		&model.FormSection{},
		&model.FormField{},
		&model.FormSubmission{},
		&model.User{},
		&model.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func createTestCollege(t *testing.T, db *gorm.DB, slug string) *model.College {
	t.Helper()
	faqJSON, _ := json.Marshal(model.DefaultFAQ())
	college := model.College{
		Name: "Test College " + slug,
		Slug: slug,
		Type: model.CollegeTypeEngineering,
		FAQ:  faqJSON,
	}
	if err := db.Create(&college).Error; err != nil {
		t.Fatalf("failed to create test college: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("college_id = ?", college.ID).Delete(&model.FormSubmission{})
		db.Unscoped().Where("form_section_id IN (?)",
			db.Model(&model.FormSection{}).Unscoped().Select("id").Where("college_id = ?", college.ID),
		).Delete(&model.FormField{})
		db.Unscoped().Where("college_id = ?", college.ID).Delete(&model.FormSection{})
		db.Unscoped().Where("college_id = ?", college.ID).Delete(&model.Section{})
		db.Unscoped().Delete(&college)
	})
	return &college
}

func TestFAQLifecycle(t *testing.T) {
	db := integrationDB(t)
	svc := NewFAQService(db, NewAuditService(db))
	ctx := context.Background()
	college := createTestCollege(t, db, "faq-lifecycle")

	// Fresh college serves the default empty aggregate
	faq, err := svc.Get(ctx, college.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(faq.Items) != 0 {
		t.Fatalf("expected empty aggregate, got %d items", len(faq.Items))
	}

	// Add, update, delete
	faq, err = svc.AddItem(ctx, college.ID, "How do I apply?", "Online portal.", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(faq.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(faq.Items))
	}
	itemID := faq.Items[0].ID

	answer := "Through the online portal."
	faq, err = svc.UpdateItem(ctx, college.ID, itemID, nil, &answer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if faq.Items[0].Answer != answer {
		t.Errorf("expected updated answer, got %q", faq.Items[0].Answer)
	}

	// Deleting a missing item is a NotFound and leaves the aggregate alone
	if _, err := svc.DeleteItem(ctx, college.ID, "no-such-id"); err == nil {
		t.Error("expected delete of missing item to fail")
	}
	faq, err = svc.Get(ctx, college.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(faq.Items) != 1 {
		t.Errorf("aggregate changed after failed delete: %d items", len(faq.Items))
	}

	if _, err := svc.DeleteItem(ctx, college.ID, itemID); err != nil {
		t.Fatal(err)
	}
}

func TestFAQIntakeApproval(t *testing.T) {
	db := integrationDB(t)
	audit := NewAuditService(db)
	faqSvc := NewFAQService(db, audit)
	subSvc := NewSubmissionService(db, audit)
	ctx := context.Background()
	college := createTestCollege(t, db, "faq-intake")

	// Generate the intake form with two question fields
	section, err := faqSvc.GenerateIntakeForm(ctx, college.ID, college.Name, []string{
		"Your first question",
		"Your second question",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(section.Fields) != 2 {
		t.Fatalf("expected 2 intake fields, got %d", len(section.Fields))
	}

	// Submit two visitor questions
	data := map[string]interface{}{
		fmt.Sprint(section.Fields[0].ID): "What are the hostel fees per year?",
		fmt.Sprint(section.Fields[1].ID): "Is there a scholarship program here?",
	}
	submission, err := subSvc.Submit(ctx, SubmitInput{
		FormSectionID: section.ID,
		CollegeID:     college.ID,
		Data:          data,
	})
	if err != nil {
		t.Fatal(err)
	}

	count, err := faqSvc.CountIntakeSubmissions(ctx, college.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 pending intake submission, got %d", count)
	}

	// Approve with answers for both fields
	answers := map[string]string{
		fmt.Sprint(section.Fields[0].ID): "See the fee schedule.",
		fmt.Sprint(section.Fields[1].ID): "Yes, merit based.",
	}
	faq, err := faqSvc.ProcessSubmission(ctx, college.ID, submission.ID, FAQActionApprove, answers)
	if err != nil {
		t.Fatal(err)
	}
	if len(faq.Items) != 2 {
		t.Fatalf("expected 2 published items after approval, got %d", len(faq.Items))
	}

	// The submission is consumed by approval
	count, err = faqSvc.CountIntakeSubmissions(ctx, college.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected 0 pending submissions after approval, got %d", count)
	}
}

func TestSectionOwnershipIsAllOrNothing(t *testing.T) {
	db := integrationDB(t)
	svc := NewSectionService(db)
	ctx := context.Background()
	owner := createTestCollege(t, db, "sections-owner")
	other := createTestCollege(t, db, "sections-other")

	mine, err := svc.BulkCreate(ctx, owner.ID, []SectionSpec{
		{Title: "Hero", SectionType: model.SectionTypeHero},
		{Title: "About", SectionType: model.SectionTypeText},
	})
	if err != nil {
		t.Fatal(err)
	}
	theirs, err := svc.Create(ctx, other.ID, SectionSpec{Title: "Theirs", SectionType: model.SectionTypeText})
	if err != nil {
		t.Fatal(err)
	}

	// One foreign id poisons the whole batch
	_, err = svc.BulkDelete(ctx, owner.ID, []uint{mine[0].ID, theirs.ID})
	if err == nil {
		t.Fatal("expected mixed-ownership delete to be rejected")
	}
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// Nothing was deleted
	remaining, err := svc.List(ctx, owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Errorf("expected both sections to survive, got %d", len(remaining))
	}
}
