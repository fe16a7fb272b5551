package middleware

import (
	"encoding/json"
	"strconv"

	"github.com/campusworks/collage-api/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit wraps a mutating route and records actor, action and target
// entity after the handler ran. Writes happen in a detached goroutine,
// a failed audit write never affects the response.
func Audit(db *gorm.DB, action, entity string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only record mutations that did not fail outright
		if c.Response().StatusCode() >= 400 {
			return err
		}

		var userID *uint
		if id, ok := GetUserID(c); ok {
			userID = &id
		}

		var entityID *uint
		if raw := c.Params("id"); raw != "" {
			if parsed, perr := strconv.ParseUint(raw, 10, 32); perr == nil {
				id := uint(parsed)
				entityID = &id
			}
		}

		metadata, _ := json.Marshal(map[string]string{
			"method": c.Method(),
			"path":   c.Path(),
			"ip":     c.IP(),
		})

		go func() {
			entry := model.AuditLog{
				Action:   action,
				Entity:   entity,
				EntityID: entityID,
				UserID:   userID,
				Metadata: datatypes.JSON(metadata),
			}
			db.Create(&entry)
		}()

		return err
	}
}
