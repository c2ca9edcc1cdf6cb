package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/autolot/models"
)

var (
	ErrWrongPassword   = errors.New("wrong password")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrCSRFInvalid     = errors.New("invalid csrf token")
	ErrRateLimited     = errors.New("too many requests")

	ErrUnknownField = errors.New("unknown field")
)

// ValidationErrors collects every invalid field of one request so the client
// can render all problems at once instead of fixing them one round trip at a
// time.
type ValidationErrors struct {
	Fields []models.FieldError
}

func (v *ValidationErrors) add(field, message string) {
	v.Fields = append(v.Fields, models.FieldError{Field: field, Message: message})
}

func (v *ValidationErrors) empty() bool {
	return len(v.Fields) == 0
}

func (v *ValidationErrors) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
