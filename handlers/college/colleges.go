package college

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/services/spaces"
	"github.com/campusworks/collage-api/utils/cache"
	"github.com/campusworks/collage-api/utils/middleware"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/campusworks/collage-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// collegeCacheTTL bounds staleness of the public slug lookup
const collegeCacheTTL = 2 * time.Hour

// CollegeHandler handles college CRUD and the public read side.
// Cache and storage are optional, nil disables them.
type CollegeHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	cache     *cache.RedisCache
	storage   *spaces.Client
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(db *gorm.DB, validator *validation.Validator, redisCache *cache.RedisCache, storage *spaces.Client) *CollegeHandler {
	return &CollegeHandler{
		db:        db,
		validator: validator,
		cache:     redisCache,
		storage:   storage,
	}
}

// CreateCollegeRequest is the college creation payload
type CreateCollegeRequest struct {
	Name         string                 `json:"name" validate:"required,min=2,max=200"`
	Slug         string                 `json:"slug" validate:"required,slug,min=2,max=100"`
	Type         string                 `json:"type" validate:"required"`
	UniversityID *uint                  `json:"universityId"`
	Theme        map[string]interface{} `json:"theme"`
}

// UpdateCollegeRequest is a partial update, nil fields are untouched
type UpdateCollegeRequest struct {
	Name          *string                `json:"name"`
	Slug          *string                `json:"slug"`
	Type          *string                `json:"type"`
	UniversityID  *uint                  `json:"universityId"`
	Theme         map[string]interface{} `json:"theme"`
	GalleryImages []string               `json:"galleryImages"`
	Projects      []interface{}          `json:"projects"`
}

// collegeWithCounts decorates a college with child entity counts for
// list views
type collegeWithCounts struct {
	model.College
	SectionCount    int64 `json:"section_count"`
	ProgramCount    int64 `json:"program_count"`
	FormCount       int64 `json:"form_count"`
	SubmissionCount int64 `json:"submission_count"`
}

// Create creates a college with an empty published FAQ aggregate
func (h *CollegeHandler) Create(c *fiber.Ctx) error {
	var req CreateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if !model.IsValidCollegeType(req.Type) {
		return response.BadRequest(c, "Invalid college type: "+req.Type)
	}

	if taken, err := h.slugTaken(c, req.Slug, 0); err != nil {
		return response.InternalServerError(c, "Failed to check slug")
	} else if taken {
		return response.Conflict(c, "A college with this slug already exists")
	}

	faq := model.DefaultFAQ()
	faqJSON, err := json.Marshal(faq)
	if err != nil {
		return response.InternalServerError(c, "Failed to initialize college")
	}

	college := model.College{
		Name:         validation.SanitizeString(req.Name),
		Slug:         req.Slug,
		Type:         req.Type,
		UniversityID: req.UniversityID,
		FAQ:          datatypes.JSON(faqJSON),
	}
	if userID, ok := middleware.GetUserID(c); ok {
		college.CreatedByID = &userID
	}
	if req.Theme != nil {
		themeJSON, err := json.Marshal(req.Theme)
		if err != nil {
			return response.BadRequest(c, "Invalid theme")
		}
		college.Theme = datatypes.JSON(themeJSON)
	}

	if err := h.db.WithContext(c.Context()).Create(&college).Error; err != nil {
		if isUniqueViolation(err) {
			return response.Conflict(c, "A college with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to create college")
	}

	return response.Created(c, college)
}

// Update applies a partial update and invalidates cached reads
func (h *CollegeHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid college ID")
	}

	var req UpdateCollegeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var college model.College
	if err := h.db.WithContext(c.Context()).First(&college, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}
	oldSlug := college.Slug

	if req.Name != nil {
		if *req.Name == "" {
			return response.BadRequest(c, "Name cannot be empty")
		}
		college.Name = validation.SanitizeString(*req.Name)
	}
	if req.Slug != nil && *req.Slug != college.Slug {
		if !validation.ValidateSlug(*req.Slug) {
			return response.BadRequest(c, "Slug must be a lowercase kebab-case identifier")
		}
		if taken, err := h.slugTaken(c, *req.Slug, college.ID); err != nil {
			return response.InternalServerError(c, "Failed to check slug")
		} else if taken {
			return response.Conflict(c, "A college with this slug already exists")
		}
		college.Slug = *req.Slug
	}
	if req.Type != nil {
		if !model.IsValidCollegeType(*req.Type) {
			return response.BadRequest(c, "Invalid college type: "+*req.Type)
		}
		college.Type = *req.Type
	}
	if req.UniversityID != nil {
		college.UniversityID = req.UniversityID
	}
	if req.Theme != nil {
		themeJSON, err := json.Marshal(req.Theme)
		if err != nil {
			return response.BadRequest(c, "Invalid theme")
		}
		college.Theme = datatypes.JSON(themeJSON)
	}
	if req.GalleryImages != nil {
		galleryJSON, err := json.Marshal(req.GalleryImages)
		if err != nil {
			return response.BadRequest(c, "Invalid gallery images")
		}
		college.GalleryImages = datatypes.JSON(galleryJSON)
	}
	if req.Projects != nil {
		projectsJSON, err := json.Marshal(req.Projects)
		if err != nil {
			return response.BadRequest(c, "Invalid projects")
		}
		college.Projects = datatypes.JSON(projectsJSON)
	}

	if err := h.db.WithContext(c.Context()).Save(&college).Error; err != nil {
		if isUniqueViolation(err) {
			return response.Conflict(c, "A college with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to update college")
	}

	h.invalidate(c, oldSlug, college.Slug, college.ID)
	return response.SuccessWithMessage(c, "College updated successfully", college)
}

// Delete removes a college and every dependent row in one transaction:
// submissions, form fields, form sections, page sections, programs, and
// member links, then the college itself.
func (h *CollegeHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid college ID")
	}

	var college model.College
	if err := h.db.WithContext(c.Context()).First(&college, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}

	err = h.db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		return services.CascadeDeleteCollege(tx, college.ID)
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete college")
	}

	h.invalidate(c, college.Slug, "", college.ID)
	return response.SuccessWithMessage(c, "College deleted successfully", fiber.Map{"id": college.ID})
}

// List returns colleges with child counts, filterable by type and
// creator
func (h *CollegeHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	query := h.db.WithContext(c.Context()).Model(&model.College{})
	if t := c.Query("type"); t != "" {
		if !model.IsValidCollegeType(t) {
			return response.BadRequest(c, "Invalid college type: "+t)
		}
		query = query.Where("type = ?", t)
	}
	if creator := c.QueryInt("createdById"); creator > 0 {
		query = query.Where("created_by_id = ?", creator)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count colleges")
	}

	pagination := response.CalculatePagination(page, limit, total)

	var colleges []model.College
	err := query.
		Preload("University").
		Order("created_at DESC").
		Limit(pagination.PerPage).
		Offset((pagination.CurrentPage - 1) * pagination.PerPage).
		Find(&colleges).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list colleges")
	}

	decorated, err := h.attachCounts(c, colleges)
	if err != nil {
		return response.InternalServerError(c, "Failed to count college resources")
	}
	return response.Paginated(c, decorated, pagination)
}

// GetByID returns one college with its sections, programs and university
func (h *CollegeHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid college ID")
	}

	var college model.College
	err = h.db.WithContext(c.Context()).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Programs").
		Preload("University").
		First(&college, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}
	return response.Success(c, college)
}

// GetBySlug is the public read, served from cache when warm
func (h *CollegeHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if !validation.ValidateSlug(slug) {
		return response.BadRequest(c, "Invalid slug")
	}

	if h.cache != nil {
		var cached model.College
		if err := h.cache.GetJSON(c.Context(), cache.CollegeKey(slug), &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	var college model.College
	err := h.db.WithContext(c.Context()).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("Programs").
		Preload("University").
		Where("slug = ?", slug).
		First(&college).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), cache.CollegeKey(slug), college, collegeCacheTTL)
	}
	return response.Success(c, college)
}

// UploadGalleryImage stores an image in object storage and appends its
// URL to the college's gallery
func (h *CollegeHandler) UploadGalleryImage(c *fiber.Ctx) error {
	if h.storage == nil {
		return response.ServiceUnavailable(c, "Object storage is not configured")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid college ID")
	}

	var college model.College
	if err := h.db.WithContext(c.Context()).First(&college, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to load college")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A file is required")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return response.BadRequest(c, "Only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer file.Close()

	key := spaces.ObjectKey(college.Slug, fileHeader.Filename)
	url, err := h.storage.Upload(c.Context(), key, file, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to upload image")
	}

	var gallery []string
	if len(college.GalleryImages) > 0 {
		if err := json.Unmarshal(college.GalleryImages, &gallery); err != nil {
			gallery = nil
		}
	}
	gallery = append(gallery, url)
	galleryJSON, err := json.Marshal(gallery)
	if err != nil {
		return response.InternalServerError(c, "Failed to update gallery")
	}

	err = h.db.WithContext(c.Context()).Model(&college).
		Update("gallery_images", datatypes.JSON(galleryJSON)).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to update gallery")
	}

	h.invalidate(c, college.Slug, "", college.ID)
	return response.SuccessWithMessage(c, "Image uploaded successfully", fiber.Map{
		"url":     url,
		"gallery": gallery,
	})
}

func (h *CollegeHandler) slugTaken(c *fiber.Ctx, slug string, excludeID uint) (bool, error) {
	query := h.db.WithContext(c.Context()).Model(&model.College{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// attachCounts decorates colleges with child counts using one grouped
// query per child table
func (h *CollegeHandler) attachCounts(c *fiber.Ctx, colleges []model.College) ([]collegeWithCounts, error) {
	decorated := make([]collegeWithCounts, 0, len(colleges))
	if len(colleges) == 0 {
		return decorated, nil
	}

	ids := make([]uint, 0, len(colleges))
	for _, col := range colleges {
		ids = append(ids, col.ID)
	}

	sections, err := h.countByCollege(c, &model.Section{}, ids)
	if err != nil {
		return nil, err
	}
	programs, err := h.countByCollege(c, &model.Program{}, ids)
	if err != nil {
		return nil, err
	}
	forms, err := h.countByCollege(c, &model.FormSection{}, ids)
	if err != nil {
		return nil, err
	}
	submissions, err := h.countByCollege(c, &model.FormSubmission{}, ids)
	if err != nil {
		return nil, err
	}

	for _, col := range colleges {
		decorated = append(decorated, collegeWithCounts{
			College:         col,
			SectionCount:    sections[col.ID],
			ProgramCount:    programs[col.ID],
			FormCount:       forms[col.ID],
			SubmissionCount: submissions[col.ID],
		})
	}
	return decorated, nil
}

func (h *CollegeHandler) countByCollege(c *fiber.Ctx, entity interface{}, ids []uint) (map[uint]int64, error) {
	type row struct {
		CollegeID uint
		N         int64
	}
	var rows []row
	err := h.db.WithContext(c.Context()).Model(entity).
		Select("college_id, count(*) as n").
		Where("college_id IN ?", ids).
		Group("college_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CollegeID] = r.N
	}
	return counts, nil
}

// invalidate drops cached reads touching this college. newSlug may be
// empty when the slug did not change.
func (h *CollegeHandler) invalidate(c *fiber.Ctx, oldSlug, newSlug string, collegeID uint) {
	if h.cache == nil {
		return
	}
	keys := []string{cache.CollegeKey(oldSlug), cache.FAQKey(collegeID)}
	if newSlug != "" && newSlug != oldSlug {
		keys = append(keys, cache.CollegeKey(newSlug))
	}
	_ = h.cache.Delete(c.Context(), keys...)
}

// isUniqueViolation recognizes the postgres duplicate key error without
// depending on driver internals
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
