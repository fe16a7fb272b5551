package cron

import (
	"context"
	"encoding/json"
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
	if err := db.AutoMigrate(&model.University{}, &model.College{}, &model.Section{}, &model.Program{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

// The cache refresh job must prime entries carrying the same
// associations the public slug read serves, or an hourly run would
// replace a full college page with a bare row.
func TestCollegesForCacheCarriesAssociations(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()

	faqJSON, _ := json.Marshal(model.DefaultFAQ())
	college := model.College{
		Name: "Cache Refresh College",
		Slug: "cache-refresh",
		Type: model.CollegeTypeScience,
		FAQ:  faqJSON,
	}
	if err := db.Create(&college).Error; err != nil {
		t.Fatalf("failed to create test college: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("college_id = ?", college.ID).Delete(&model.Section{})
		db.Unscoped().Where("college_id = ?", college.ID).Delete(&model.Program{})
		db.Unscoped().Delete(&college)
	})

	sections := []model.Section{
		{CollegeID: college.ID, Title: "About", SectionType: model.SectionTypeText, Order: 1},
		{CollegeID: college.ID, Title: "Hero", SectionType: model.SectionTypeHero, Order: 0},
	}
	if err := db.Create(&sections).Error; err != nil {
		t.Fatal(err)
	}
	program := model.Program{CollegeID: college.ID, Name: "Physics", Slug: "physics"}
	if err := db.Create(&program).Error; err != nil {
		t.Fatal(err)
	}

	colleges, err := collegesForCache(ctx, db)
	if err != nil {
		t.Fatal(err)
	}

	var found *model.College
	for i := range colleges {
		if colleges[i].ID == college.ID {
			found = &colleges[i]
			break
		}
	}
	if found == nil {
		t.Fatal("test college missing from cache load")
	}
	if len(found.Sections) != 2 {
		t.Errorf("expected 2 sections in cached payload, got %d", len(found.Sections))
	}
	if len(found.Sections) == 2 && found.Sections[0].Title != "Hero" {
		t.Errorf("expected sections in display order, got %q first", found.Sections[0].Title)
	}
	if len(found.Programs) != 1 {
		t.Errorf("expected 1 program in cached payload, got %d", len(found.Programs))
	}
}
