package cron

import (
	"context"
	"log"
	"time"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/cache"
	"gorm.io/gorm"
)

// collegeCacheTTL is generous here because the job re-primes hourly and
// mutations invalidate eagerly.
const collegeCacheTTL = 2 * time.Hour

// TrimAuditLogs deletes audit entries older than the configured
// retention window
func (m *CronManager) TrimAuditLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	deleted, err := m.audit.TrimOlderThan(ctx, m.retentionDays)
	if err != nil {
		log.Printf("cron: audit trim failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("cron: trimmed %d audit log entries older than %d days", deleted, m.retentionDays)
	}
}

// RefreshCollegeCache re-primes the slug-keyed college cache so reads
// stay warm between mutations
func (m *CronManager) RefreshCollegeCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	colleges, err := collegesForCache(ctx, m.db)
	if err != nil {
		log.Printf("cron: cache refresh query failed: %v", err)
		return
	}

	refreshed := 0
	for _, college := range colleges {
		key := cache.CollegeKey(college.Slug)
		if err := m.cache.SetJSON(ctx, key, college, collegeCacheTTL); err != nil {
			log.Printf("cron: failed to cache college %s: %v", college.Slug, err)
			continue
		}
		refreshed++
	}
	log.Printf("cron: refreshed %d college cache entries", refreshed)
}

// collegesForCache loads colleges with the same associations the public
// slug read serves, so a re-primed entry is indistinguishable from one
// the handler built.
func collegesForCache(ctx context.Context, db *gorm.DB) ([]model.College, error) {
	var colleges []model.College
	err := db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Programs").
		Preload("University").
		Find(&colleges).Error
	return colleges, err
}
