package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionSubmit  = "submit"
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"
	AuditActionReorder = "reorder"
	AuditActionUpload  = "upload"
)

// AuditLog records who did what to which entity. Append-only, never
// updated or deleted by application logic (the retention job trims by age).
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Action    string         `gorm:"type:varchar(50);not null" json:"action"`
	Entity    string         `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID  *uint          `gorm:"index" json:"entity_id,omitempty"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
