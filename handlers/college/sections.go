package college

import (
	"github.com/campusworks/collage-api/handlers"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// SectionHandler manages page sections: single CRUD plus the bulk and
// reorder operations scoped to one college
type SectionHandler struct {
	svc *services.SectionService
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(svc *services.SectionService) *SectionHandler {
	return &SectionHandler{svc: svc}
}

// CreateSectionRequest creates one section outside the bulk path
type CreateSectionRequest struct {
	CollegeID uint `json:"collegeId"`
	services.SectionSpec
}

// BulkCreateSectionsRequest creates many sections at once
type BulkCreateSectionsRequest struct {
	Sections []services.SectionSpec `json:"sections"`
}

// BulkDeleteSectionsRequest removes many sections at once
type BulkDeleteSectionsRequest struct {
	SectionIDs []uint `json:"sectionIds"`
}

// ReorderSectionsRequest applies new display orders
type ReorderSectionsRequest struct {
	SectionOrders []services.SectionOrder `json:"sectionOrders"`
}

// UpdateSectionRequest is a partial update, nil fields are untouched
type UpdateSectionRequest struct {
	Title    *string                `json:"title"`
	Content  *string                `json:"content"`
	Order    *int                   `json:"order"`
	Settings map[string]interface{} `json:"settings"`
}

// Create creates a single section
func (h *SectionHandler) Create(c *fiber.Ctx) error {
	var req CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	section, err := h.svc.Create(c.Context(), req.CollegeID, req.SectionSpec)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to create section")
	}
	return response.Created(c, section)
}

// BulkCreate creates all given sections in one transaction
func (h *SectionHandler) BulkCreate(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req BulkCreateSectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sections, err := h.svc.BulkCreate(c.Context(), collegeID, req.Sections)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to create sections")
	}
	return response.Created(c, sections)
}

// BulkDelete removes the given sections after ownership verification
func (h *SectionHandler) BulkDelete(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req BulkDeleteSectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	deleted, err := h.svc.BulkDelete(c.Context(), collegeID, req.SectionIDs)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to delete sections")
	}
	return response.SuccessWithMessage(c, "Sections deleted successfully", fiber.Map{
		"deleted": deleted,
	})
}

// Reorder applies {id, order} pairs and returns the fresh ordering
func (h *SectionHandler) Reorder(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req ReorderSectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sections, err := h.svc.Reorder(c.Context(), collegeID, req.SectionOrders)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to reorder sections")
	}
	return response.SuccessWithMessage(c, "Sections reordered successfully", sections)
}

// Update applies a partial update to one section
func (h *SectionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid section ID")
	}
	var req UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	section, err := h.svc.Update(c.Context(), uint(id), services.UpdateSectionInput{
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
		Settings: req.Settings,
	})
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to update section")
	}
	return response.SuccessWithMessage(c, "Section updated successfully", section)
}

// Delete removes a single section
func (h *SectionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid section ID")
	}

	if err := h.svc.Delete(c.Context(), uint(id)); err != nil {
		return handlers.ServiceError(c, err, "Failed to delete section")
	}
	return response.SuccessWithMessage(c, "Section deleted successfully", fiber.Map{"id": id})
}
