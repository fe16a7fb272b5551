package form

import (
	"github.com/campusworks/collage-api/handlers"
	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// CreateFormFieldRequest creates a new field on a form section
type CreateFormFieldRequest struct {
	FormSectionID uint                   `json:"formSectionId"`
	Label         string                 `json:"label"`
	Type          string                 `json:"type"`
	IsRequired    bool                   `json:"isRequired"`
	Options       []string               `json:"options"`
	Validation    map[string]interface{} `json:"validation"`
	Order         int                    `json:"order"`
}

// UpdateFormFieldRequest is a partial update, nil fields are untouched
type UpdateFormFieldRequest struct {
	Label      *string                `json:"label"`
	Type       *string                `json:"type"`
	IsRequired *bool                  `json:"isRequired"`
	Options    []string               `json:"options"`
	Validation map[string]interface{} `json:"validation"`
	Order      *int                   `json:"order"`
}

// CreateField creates a typed field on an existing section
func (h *FormHandler) CreateField(c *fiber.Ctx) error {
	var req CreateFormFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Type != "" && !model.IsValidFieldType(req.Type) {
		return response.BadRequest(c, "Invalid field type: "+req.Type)
	}

	field, err := h.svc.CreateField(c.Context(), services.CreateFormFieldInput{
		FormSectionID: req.FormSectionID,
		Label:         req.Label,
		Type:          req.Type,
		IsRequired:    req.IsRequired,
		Options:       req.Options,
		Validation:    req.Validation,
		Order:         req.Order,
	})
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to create form field")
	}
	return response.Created(c, field)
}

// UpdateField applies a partial update
func (h *FormHandler) UpdateField(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid form field ID")
	}
	var req UpdateFormFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Type != nil && !model.IsValidFieldType(*req.Type) {
		return response.BadRequest(c, "Invalid field type: "+*req.Type)
	}

	field, err := h.svc.UpdateField(c.Context(), uint(id), services.UpdateFormFieldInput{
		Label:      req.Label,
		Type:       req.Type,
		IsRequired: req.IsRequired,
		Options:    req.Options,
		Validation: req.Validation,
		Order:      req.Order,
	})
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to update form field")
	}
	return response.SuccessWithMessage(c, "Form field updated successfully", field)
}

// DeleteField removes a single field
func (h *FormHandler) DeleteField(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid form field ID")
	}

	if err := h.svc.DeleteField(c.Context(), uint(id)); err != nil {
		return handlers.ServiceError(c, err, "Failed to delete form field")
	}
	return response.SuccessWithMessage(c, "Form field deleted successfully", fiber.Map{"id": id})
}
