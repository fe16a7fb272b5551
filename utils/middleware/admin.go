package middleware

import (
	"github.com/campusworks/collage-api/model"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin ensures the authenticated user is ADMIN or SUPERADMIN.
// Must run after AuthMiddleware.Required.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok || user == nil {
			return response.Unauthorized(c, "Authentication required")
		}
		if !user.IsAdmin() {
			return response.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}

// RequireSuperAdmin ensures the authenticated user is SUPERADMIN
func (m *AuthMiddleware) RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok || user == nil {
			return response.Unauthorized(c, "Authentication required")
		}
		if user.UserType != model.UserTypeSuperAdmin {
			return response.Forbidden(c, "Superadmin access required")
		}
		return c.Next()
	}
}
