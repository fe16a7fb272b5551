package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/campusworks/collage-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService appends entries to the audit trail. Writes are
// best-effort: a failed audit write is logged and swallowed, it never
// fails the operation being audited.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit entry
func (s *AuditService) Record(ctx context.Context, action, entity string, entityID, userID *uint, metadata interface{}) {
	entry := model.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		UserID:   userID,
	}

	if metadata != nil {
		metadataJSON, err := json.Marshal(metadata)
		if err != nil {
			log.Printf("audit: failed to marshal metadata for %s %s: %v", action, entity, err)
		} else {
			entry.Metadata = datatypes.JSON(metadataJSON)
		}
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s %s: %v", action, entity, err)
	}
}

// TrimOlderThan deletes audit entries older than the given number of
// days. Zero or negative keeps everything. Used by the retention job.
func (s *AuditService) TrimOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("created_at < now() - make_interval(days => ?)", days).
		Delete(&model.AuditLog{})
	return res.RowsAffected, res.Error
}
