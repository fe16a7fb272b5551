package handlers

import (
	"time"

	"github.com/campusworks/collage-api/database"
	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/cache"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler exposes liveness and readiness endpoints
type HealthHandler struct {
	store database.Storage
	db    *gorm.DB
	cache *cache.RedisCache
}

// NewHealthHandler creates a new health handler. Cache may be nil when
// Redis is not configured.
func NewHealthHandler(store database.Storage, db *gorm.DB, redisCache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{store: store, db: db, cache: redisCache}
}

// Basic returns a simple liveness check
func (h *HealthHandler) Basic(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Detailed checks the database and cache and reports entity counts.
// A failing database makes the endpoint return 503.
func (h *HealthHandler) Detailed(c *fiber.Ctx) error {
	started := time.Now()
	checks := fiber.Map{}
	healthy := true

	dbStart := time.Now()
	if err := h.store.HealthCheck(); err != nil {
		healthy = false
		checks["database"] = fiber.Map{
			"status": "down",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = fiber.Map{
			"status":  "up",
			"latency": time.Since(dbStart).String(),
		}
	}

	if h.cache != nil {
		cacheStart := time.Now()
		if err := h.cache.Ping(c.Context()); err != nil {
			// A cold cache degrades reads but does not take the API down
			checks["cache"] = fiber.Map{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			checks["cache"] = fiber.Map{
				"status":  "up",
				"latency": time.Since(cacheStart).String(),
			}
		}
	} else {
		checks["cache"] = fiber.Map{"status": "disabled"}
	}

	counts := fiber.Map{}
	if healthy {
		type entity struct {
			name  string
			model interface{}
		}
		for _, e := range []entity{
			{"universities", &model.University{}},
			{"colleges", &model.College{}},
			{"form_sections", &model.FormSection{}},
			{"form_submissions", &model.FormSubmission{}},
		} {
			var n int64
			if err := h.db.WithContext(c.Context()).Model(e.model).Count(&n).Error; err == nil {
				counts[e.name] = n
			}
		}
	}

	payload := fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"duration":  time.Since(started).String(),
		"checks":    checks,
		"counts":    counts,
	}

	if !healthy {
		payload["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Data:    payload,
			Error: &response.ErrorDetail{
				Code:    "SERVICE_UNAVAILABLE",
				Message: "One or more dependencies are down",
			},
		})
	}
	return response.Success(c, payload)
}
