package form

import (
	"github.com/campusworks/collage-api/handlers"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler accepts and manages visitor submissions
type SubmissionHandler struct {
	svc *services.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(svc *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// SubmitRequest is one visitor submission. Data maps field id to the
// submitted value.
type SubmitRequest struct {
	CollegeID uint                   `json:"collegeId"`
	Data      map[string]interface{} `json:"data"`
}

// Submit validates and stores one submission for the form in the path
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	formSectionID, err := c.ParamsInt("id")
	if err != nil || formSectionID < 1 {
		return response.BadRequest(c, "Invalid form section ID")
	}
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	submission, err := h.svc.Submit(c.Context(), services.SubmitInput{
		FormSectionID: uint(formSectionID),
		CollegeID:     req.CollegeID,
		Data:          req.Data,
	})
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to create submission")
	}
	return response.Created(c, submission)
}

// List returns submissions newest-first, filterable by form section and
// college
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	opts := services.ListSubmissionsOptions{Page: page, Limit: limit}
	if sectionID := c.QueryInt("formSectionId"); sectionID > 0 {
		id := uint(sectionID)
		opts.FormSectionID = &id
	}
	if collegeID := c.QueryInt("collegeId"); collegeID > 0 {
		id := uint(collegeID)
		opts.CollegeID = &id
	}

	submissions, total, err := h.svc.List(c.Context(), opts)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to list submissions")
	}
	return response.Paginated(c, submissions, response.CalculatePagination(page, limit, total))
}

// Delete removes one submission
func (h *SubmissionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid submission ID")
	}

	if err := h.svc.Delete(c.Context(), uint(id)); err != nil {
		return handlers.ServiceError(c, err, "Failed to delete submission")
	}
	return response.SuccessWithMessage(c, "Submission deleted successfully", fiber.Map{"id": id})
}
