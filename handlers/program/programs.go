package program

import (
	"errors"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/campusworks/collage-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProgramHandler manages academic programs scoped to one college. Every
// mutation verifies the program belongs to the college in the path.
type ProgramHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(db *gorm.DB, validator *validation.Validator) *ProgramHandler {
	return &ProgramHandler{db: db, validator: validator}
}

// CreateProgramRequest is the program creation payload. Slug is derived
// from the name when omitted.
type CreateProgramRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description"`
	Slug        string `json:"slug" validate:"omitempty,slug"`
}

// UpdateProgramRequest is a partial update, nil fields are untouched
type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
}

// Create creates a program under the college in the path
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	collegeID, err := c.ParamsInt("id")
	if err != nil || collegeID < 1 {
		return response.BadRequest(c, "Invalid college ID")
	}

	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var college model.College
	if err := h.db.WithContext(c.Context()).Select("id").First(&college, collegeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}

	slug := req.Slug
	if slug == "" {
		slug = validation.Slugify(req.Name)
	}

	program := model.Program{
		CollegeID:   uint(collegeID),
		Name:        validation.SanitizeString(req.Name),
		Description: req.Description,
		Slug:        slug,
	}
	if err := h.db.WithContext(c.Context()).Create(&program).Error; err != nil {
		return response.InternalServerError(c, "Failed to create program")
	}
	return response.Created(c, program)
}

// Update applies a partial update after verifying ownership
func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	program, err := h.ownedProgram(c)
	if program == nil {
		return err
	}

	var req UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return response.BadRequest(c, "Name cannot be empty")
		}
		program.Name = validation.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.Slug != nil {
		if !validation.ValidateSlug(*req.Slug) {
			return response.BadRequest(c, "Slug must be a lowercase kebab-case identifier")
		}
		program.Slug = *req.Slug
	}

	if err := h.db.WithContext(c.Context()).Save(program).Error; err != nil {
		return response.InternalServerError(c, "Failed to update program")
	}
	return response.SuccessWithMessage(c, "Program updated successfully", program)
}

// Delete removes a program after verifying ownership
func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	program, err := h.ownedProgram(c)
	if program == nil {
		return err
	}

	if err := h.db.WithContext(c.Context()).Delete(program).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete program")
	}
	return response.SuccessWithMessage(c, "Program deleted successfully", fiber.Map{"id": program.ID})
}

// List returns all programs of the college in the path
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	collegeID, err := c.ParamsInt("id")
	if err != nil || collegeID < 1 {
		return response.BadRequest(c, "Invalid college ID")
	}

	var programs []model.Program
	err = h.db.WithContext(c.Context()).
		Where("college_id = ?", collegeID).
		Order("name ASC").
		Find(&programs).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list programs")
	}
	return response.Success(c, programs)
}

// ownedProgram loads the program from the path and rejects the request
// when it does not belong to the college in the path. A nil program
// means the response has already been written.
func (h *ProgramHandler) ownedProgram(c *fiber.Ctx) (*model.Program, error) {
	collegeID, err := c.ParamsInt("id")
	if err != nil || collegeID < 1 {
		return nil, response.BadRequest(c, "Invalid college ID")
	}
	programID, err := c.ParamsInt("programId")
	if err != nil || programID < 1 {
		return nil, response.BadRequest(c, "Invalid program ID")
	}

	var program model.Program
	if err := h.db.WithContext(c.Context()).First(&program, programID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound(c, "Program not found")
		}
		return nil, response.InternalServerError(c, "Failed to load program")
	}
	if program.CollegeID != uint(collegeID) {
		return nil, response.Forbidden(c, "Program does not belong to this college")
	}
	return &program, nil
}
