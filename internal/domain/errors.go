package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("not authorized")
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrDuplicateEmail       = errors.New("email already registered")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found in a payload so
// callers see all of them in a single round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}
