package services

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by services and translated at the handler
// boundary: validation → 400, not found → 404, conflict → 409,
// forbidden → 403, anything else → 500.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
