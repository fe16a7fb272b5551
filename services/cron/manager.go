package cron

import (
	"log"

	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/cache"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages the scheduled maintenance jobs
type CronManager struct {
	cron          *cron.Cron
	db            *gorm.DB
	cache         *cache.RedisCache
	audit         *services.AuditService
	retentionDays int
}

// NewCronManager creates a new cron manager. cache may be nil, the
// cache refresh job is skipped then.
func NewCronManager(db *gorm.DB, redisCache *cache.RedisCache, retentionDays int) *CronManager {
	return &CronManager{
		cron:          cron.New(),
		db:            db,
		cache:         redisCache,
		audit:         services.NewAuditService(db),
		retentionDays: retentionDays,
	}
}

// Start registers and starts all jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Nightly: trim aged audit log entries
	_, err := m.cron.AddFunc("0 3 * * *", m.TrimAuditLogs)
	if err != nil {
		return err
	}

	// Hourly: re-prime the college read cache
	if m.cache != nil {
		if _, err := m.cron.AddFunc("0 * * * *", m.RefreshCollegeCache); err != nil {
			return err
		}
	}

	m.cron.Start()
	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}
