package router

import (
	"log"
	"os"
	"time"

	"github.com/campusworks/collage-api/config"
	"github.com/campusworks/collage-api/database"
	"github.com/campusworks/collage-api/handlers"
	admin_handlers "github.com/campusworks/collage-api/handlers/admin"
	auth_handlers "github.com/campusworks/collage-api/handlers/auth"
	college_handlers "github.com/campusworks/collage-api/handlers/college"
	form_handlers "github.com/campusworks/collage-api/handlers/form"
	program_handlers "github.com/campusworks/collage-api/handlers/program"
	university_handlers "github.com/campusworks/collage-api/handlers/university"
	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/services/spaces"
	"github.com/campusworks/collage-api/utils/auth"
	"github.com/campusworks/collage-api/utils/cache"
	"github.com/campusworks/collage-api/utils/middleware"
	"github.com/campusworks/collage-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires middleware, handlers and the full route surface.
// cache and storage may be nil, the affected features degrade gracefully.
func SetupRoutes(app *fiber.App, store database.Storage, redisCache *cache.RedisCache, storage *spaces.Client) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "collage-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	validator := validation.NewValidator()
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	auditService := services.NewAuditService(db)
	formService := services.NewFormService(db)
	submissionService := services.NewSubmissionService(db, auditService)
	faqService := services.NewFAQService(db, auditService)
	sectionService := services.NewSectionService(db)

	// Handlers
	healthHandler := handlers.NewHealthHandler(store, db, redisCache)
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, validator, getEnv.GOOGLE_CLIENT_ID)
	collegeHandler := college_handlers.NewCollegeHandler(db, validator, redisCache, storage)
	faqHandler := college_handlers.NewFAQHandler(faqService, db, redisCache)
	sectionHandler := college_handlers.NewSectionHandler(sectionService)
	formHandler := form_handlers.NewFormHandler(formService)
	submissionHandler := form_handlers.NewSubmissionHandler(submissionService)
	programHandler := program_handlers.NewProgramHandler(db, validator)
	universityHandler := university_handlers.NewUniversityHandler(db, validator)
	auditHandler := admin_handlers.NewAuditHandler(db)

	// Security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health (public)
	app.Get("/health", healthHandler.Basic)
	app.Get("/health/detailed", healthHandler.Detailed)

	// Auth
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.GoogleSignIn)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.Profile)

	requireAuth := authMiddleware.Required()
	requireAdmin := authMiddleware.RequireAdmin()

	// Colleges. The legacy /collage spelling is the public contract.
	collage := app.Group("/collage")
	collage.Post("/create", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "college"), collegeHandler.Create)
	collage.Put("/:id/update", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "college"), collegeHandler.Update)
	collage.Delete("/:id/delete", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "college"), collegeHandler.Delete)
	collage.Get("/", collegeHandler.List)
	collage.Get("/slug/:slug", collegeHandler.GetBySlug)
	collage.Post("/:id/gallery/upload", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpload, "college"), collegeHandler.UploadGalleryImage)

	// Published FAQ and the intake promotion workflow
	collage.Get("/:id/faq", faqHandler.Get)
	collage.Put("/:id/faq", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "faq"), faqHandler.Replace)
	collage.Post("/:id/faq/items", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "faq_item"), faqHandler.AddItem)
	collage.Put("/:id/faq/items/:itemId", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "faq_item"), faqHandler.UpdateItem)
	collage.Delete("/:id/faq/items/:itemId", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "faq_item"), faqHandler.DeleteItem)
	collage.Post("/:id/faq/import", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "faq"), faqHandler.Import)
	collage.Post("/:id/faq/generate-form", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "form_section"), faqHandler.GenerateForm)
	collage.Put("/:id/faq/submissions/:submissionId", requireAuth, requireAdmin, faqHandler.ProcessSubmission)
	collage.Get("/:id/faq/submissions", requireAuth, requireAdmin, faqHandler.ListSubmissions)

	// Page sections, bulk operations scoped to one college
	collage.Post("/:id/sections/bulk", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "section"), sectionHandler.BulkCreate)
	collage.Delete("/:id/sections/bulk", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "section"), sectionHandler.BulkDelete)
	collage.Put("/:id/sections/reorder", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionReorder, "section"), sectionHandler.Reorder)

	// Programs nested under their college
	collage.Post("/:id/programs", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "program"), programHandler.Create)
	collage.Put("/:id/programs/:programId", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "program"), programHandler.Update)
	collage.Delete("/:id/programs/:programId", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "program"), programHandler.Delete)
	collage.Get("/:id/programs", programHandler.List)

	// Registered after the named sub-routes so they do not shadow them
	collage.Get("/:id", collegeHandler.GetByID)

	// Single-section CRUD
	section := app.Group("/section")
	section.Post("/create", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "section"), sectionHandler.Create)
	section.Put("/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "section"), sectionHandler.Update)
	section.Delete("/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "section"), sectionHandler.Delete)

	// Forms. The form-feilds spelling is the public contract.
	forms := app.Group("/forms")
	forms.Post("/form-sections/create", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "form_section"), formHandler.CreateSection)
	forms.Get("/form-sections", formHandler.ListSections)
	forms.Get("/form-sections/:id", formHandler.GetSection)
	forms.Put("/form-sections/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "form_section"), formHandler.UpdateSection)
	forms.Delete("/form-sections/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "form_section"), formHandler.DeleteSection)
	forms.Patch("/form-sections/:id/toggle-active", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "form_section"), formHandler.ToggleActive)
	forms.Post("/form-feilds/create", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "form_field"), formHandler.CreateField)
	forms.Put("/form-feilds/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "form_field"), formHandler.UpdateField)
	forms.Delete("/form-feilds/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "form_field"), formHandler.DeleteField)

	// Submissions: intake is public, management is admin-only
	forms.Post("/:id/submit", submissionHandler.Submit)
	forms.Get("/submissions", requireAuth, requireAdmin, submissionHandler.List)
	forms.Delete("/submissions/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "form_submission"), submissionHandler.Delete)

	// Universities
	universityGroup := app.Group("/university")
	universityGroup.Post("/create", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionCreate, "university"), universityHandler.Create)
	universityGroup.Get("/", universityHandler.List)
	universityGroup.Get("/:id", universityHandler.Get)
	universityGroup.Put("/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionUpdate, "university"), universityHandler.Update)
	universityGroup.Delete("/:id", requireAuth, requireAdmin,
		middleware.Audit(db, model.AuditActionDelete, "university"), universityHandler.Delete)

	// Admin: audit trail, superadmin only
	adminGroup := app.Group("/admin", authMiddleware.Required(), authMiddleware.RequireSuperAdmin())
	adminGroup.Get("/audit-logs", auditHandler.List)
	adminGroup.Get("/audit-logs/:id", auditHandler.Get)
}
