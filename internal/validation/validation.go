// Package validation checks decoded request bodies before they reach a service.
// Field problems are collected into an *Error so a client sees all of them at once.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
)

// Error maps field names to what is wrong with them.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

func fieldErrors(errs map[string]string) error {
	if len(errs) > 0 {
		return &Error{Fields: errs}
	}
	return nil
}

func validName(errs map[string]string, name string) {
	if strings.TrimSpace(name) == "" {
		errs["name"] = "name is required"
	} else if len(name) > 100 {
		errs["name"] = "name must be 100 characters or less"
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
