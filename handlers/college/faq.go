package college

import (
	"errors"
	"time"

	"github.com/campusworks/collage-api/handlers"
	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/cache"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// faqCacheTTL bounds staleness of the public FAQ read
const faqCacheTTL = 30 * time.Minute

// FAQHandler exposes the published FAQ aggregate and the intake
// promotion workflow
type FAQHandler struct {
	svc   *services.FAQService
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(svc *services.FAQService, db *gorm.DB, redisCache *cache.RedisCache) *FAQHandler {
	return &FAQHandler{svc: svc, db: db, cache: redisCache}
}

// ReplaceFAQRequest replaces the whole aggregate
type ReplaceFAQRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Items       []model.FAQItem `json:"items"`
}

// AddFAQItemRequest appends one published item
type AddFAQItemRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    *int   `json:"order"`
}

// UpdateFAQItemRequest is a partial item update
type UpdateFAQItemRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Order    *int    `json:"order"`
}

// ImportFAQRequest bulk-appends question/answer pairs
type ImportFAQRequest struct {
	Items []model.FAQImportItem `json:"items"`
}

// GenerateFormRequest creates the intake form for visitor questions
type GenerateFormRequest struct {
	Questions []string `json:"questions"`
}

// ProcessSubmissionRequest approves or rejects one intake submission.
// Answers are keyed by field id and only required for approval.
type ProcessSubmissionRequest struct {
	Action  string            `json:"action"`
	Answers map[string]string `json:"answers"`
}

// Get returns the published aggregate, served from cache when warm
func (h *FAQHandler) Get(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}

	if h.cache != nil {
		var cached model.FAQData
		if err := h.cache.GetJSON(c.Context(), cache.FAQKey(collegeID), &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	faq, err := h.svc.Get(c.Context(), collegeID)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to load FAQ")
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), cache.FAQKey(collegeID), faq, faqCacheTTL)
	}
	return response.Success(c, faq)
}

// Replace overwrites title, description and items wholesale
func (h *FAQHandler) Replace(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req ReplaceFAQRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.svc.Replace(c.Context(), collegeID, req.Title, req.Description, req.Items)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to replace FAQ")
	}

	h.invalidateFAQ(c, collegeID)
	return response.SuccessWithMessage(c, "FAQ replaced successfully", faq)
}

// AddItem appends one published item
func (h *FAQHandler) AddItem(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req AddFAQItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.svc.AddItem(c.Context(), collegeID, req.Question, req.Answer, req.Order)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to add FAQ item")
	}

	h.invalidateFAQ(c, collegeID)
	return response.Created(c, faq)
}

// UpdateItem merges the supplied fields into one item
func (h *FAQHandler) UpdateItem(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	itemID := c.Params("itemId")
	if itemID == "" {
		return response.BadRequest(c, "Invalid FAQ item ID")
	}
	var req UpdateFAQItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.svc.UpdateItem(c.Context(), collegeID, itemID, req.Question, req.Answer, req.Order)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to update FAQ item")
	}

	h.invalidateFAQ(c, collegeID)
	return response.SuccessWithMessage(c, "FAQ item updated successfully", faq)
}

// DeleteItem removes one item, a missing id is a 404
func (h *FAQHandler) DeleteItem(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	itemID := c.Params("itemId")
	if itemID == "" {
		return response.BadRequest(c, "Invalid FAQ item ID")
	}

	faq, err := h.svc.DeleteItem(c.Context(), collegeID, itemID)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to delete FAQ item")
	}

	h.invalidateFAQ(c, collegeID)
	return response.SuccessWithMessage(c, "FAQ item deleted successfully", faq)
}

// Import bulk-appends pairs, all-or-nothing
func (h *FAQHandler) Import(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req ImportFAQRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.svc.Import(c.Context(), collegeID, req.Items)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to import FAQ items")
	}

	h.invalidateFAQ(c, collegeID)
	return response.SuccessWithMessage(c, "FAQ items imported successfully", faq)
}

// GenerateForm creates the intake form collecting visitor questions
func (h *FAQHandler) GenerateForm(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	var req GenerateFormRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var college model.College
	if err := h.db.WithContext(c.Context()).Select("id", "name").First(&college, collegeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}

	section, err := h.svc.GenerateIntakeForm(c.Context(), collegeID, college.Name, req.Questions)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to generate intake form")
	}
	return response.Created(c, section)
}

// ProcessSubmission approves or rejects one intake submission
func (h *FAQHandler) ProcessSubmission(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	submissionID, err := c.ParamsInt("submissionId")
	if err != nil || submissionID < 1 {
		return response.BadRequest(c, "Invalid submission ID")
	}
	var req ProcessSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.svc.ProcessSubmission(c.Context(), collegeID, uint(submissionID), req.Action, req.Answers)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to process submission")
	}

	if req.Action == services.FAQActionReject {
		return response.SuccessWithMessage(c, "Submission rejected", fiber.Map{
			"submission_id": submissionID,
		})
	}

	h.invalidateFAQ(c, collegeID)
	return response.SuccessWithMessage(c, "Submission approved", faq)
}

// ListSubmissions lists pending intake submissions with the total count
func (h *FAQHandler) ListSubmissions(c *fiber.Ctx) error {
	collegeID, err := collegeParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid college ID")
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	submissions, total, err := h.svc.ListIntakeSubmissions(c.Context(), collegeID, page, limit)
	if err != nil {
		return handlers.ServiceError(c, err, "Failed to list intake submissions")
	}
	return response.Paginated(c, submissions, response.CalculatePagination(page, limit, total))
}

// invalidateFAQ drops the cached aggregate and the cached college page
// embedding it
func (h *FAQHandler) invalidateFAQ(c *fiber.Ctx, collegeID uint) {
	if h.cache == nil {
		return
	}
	keys := []string{cache.FAQKey(collegeID)}
	var college model.College
	if err := h.db.WithContext(c.Context()).Select("slug").First(&college, collegeID).Error; err == nil {
		keys = append(keys, cache.CollegeKey(college.Slug))
	}
	_ = h.cache.Delete(c.Context(), keys...)
}

// collegeParam parses the :id college path parameter
func collegeParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, errors.New("invalid college id")
	}
	return uint(id), nil
}
