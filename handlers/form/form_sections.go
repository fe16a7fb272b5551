package form

import (
	"github.com/campusworks/collage-api/handlers"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// FormHandler manages form schemas: sections and their fields
type FormHandler struct {
	svc *services.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(svc *services.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// CreateFormSectionRequest creates a new form section
type CreateFormSectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CollegeID   *uint  `json:"collegeId"`
}

// UpdateFormSectionRequest is a partial update, nil fields are untouched
type UpdateFormSectionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	CollegeID   *uint   `json:"collegeId"`
}

// CreateSection creates a form section, active by default
func (h *FormHandler) CreateSection(c *fiber.Ctx) error {
	var req CreateFormSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	section, err := h.svc.CreateSection(c.Context(), services.CreateFormSectionInput{
		Title:       req.Title,
		Description: req.Description,
		CollegeID:   req.CollegeID,
	})
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to create form section")
	}
	return response.Created(c, section)
}

// ListSections returns paginated sections with their ordered fields
func (h *FormHandler) ListSections(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	opts := services.ListFormSectionsOptions{Page: page, Limit: limit}
	if collegeID := c.QueryInt("collegeId"); collegeID > 0 {
		id := uint(collegeID)
		opts.CollegeID = &id
	}

	sections, total, err := h.svc.ListSections(c.Context(), opts)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to list form sections")
	}
	return response.Paginated(c, sections, response.CalculatePagination(page, limit, total))
}

// GetSection returns one section with its fields and submission count
func (h *FormHandler) GetSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid form section ID")
	}

	section, submissionCount, err := h.svc.GetSectionComplete(c.Context(), uint(id))
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to load form section")
	}
	return response.Success(c, fiber.Map{
		"section":          section,
		"submission_count": submissionCount,
	})
}

// UpdateSection applies a partial update
func (h *FormHandler) UpdateSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid form section ID")
	}
	var req UpdateFormSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	section, err := h.svc.UpdateSection(c.Context(), uint(id), services.UpdateFormSectionInput{
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
		CollegeID:   req.CollegeID,
	})
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to update form section")
	}
	return response.SuccessWithMessage(c, "Form section updated successfully", section)
}

// DeleteSection removes a section with its fields and submissions
func (h *FormHandler) DeleteSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid form section ID")
	}

	if err := h.svc.DeleteSection(c.Context(), uint(id)); err != nil {
		return handlers.ServiceError(c, err, "Failed to delete form section")
	}
	return response.SuccessWithMessage(c, "Form section deleted successfully", fiber.Map{"id": id})
}

// ToggleActive flips whether the section accepts submissions
func (h *FormHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid form section ID")
	}

	section, err := h.svc.ToggleActive(c.Context(), uint(id))
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to toggle form section")
	}
	return response.SuccessWithMessage(c, "Form section toggled successfully", section)
}
