package handlers

import (
	"errors"
	"log"

	"github.com/campusworks/collage-api/services"
	"github.com/campusworks/collage-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// ServiceError translates the service error taxonomy into HTTP
// responses. Anything unrecognized is logged server-side and returned
// as a generic 500 without internal detail.
func ServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return response.ValidationError(c, err)
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return response.Forbidden(c, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}
