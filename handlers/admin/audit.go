package admin

import (
	"errors"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuditHandler exposes the append-only audit trail to administrators
type AuditHandler struct {
	db *gorm.DB
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// List returns audit entries newest-first, filterable by action, entity
// and actor
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	query := h.db.WithContext(c.Context()).Model(&model.AuditLog{})
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if userID := c.QueryInt("user_id"); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count audit entries")
	}

	pagination := response.CalculatePagination(page, limit, total)

	var entries []model.AuditLog
	err := query.
		Preload("User").
		Order("created_at DESC").
		Limit(pagination.PerPage).
		Offset((pagination.CurrentPage - 1) * pagination.PerPage).
		Find(&entries).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list audit entries")
	}
	return response.Paginated(c, entries, pagination)
}

// Get returns one audit entry
func (h *AuditHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid audit entry ID")
	}

	var entry model.AuditLog
	err = h.db.WithContext(c.Context()).
		Preload("User").
		First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Audit entry not found")
		}
		return response.InternalServerError(c, "Failed to load audit entry")
	}
	return response.Success(c, entry)
}
