package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a relation toggle is a no-op: adding a
	// member that is already present, or removing one that is absent.
	ErrConflict = errors.New("relation already in requested state")
	// ErrConstraint is returned when the store rejects a write at commit
	// time (duplicate recipe name per author, duplicate membership row).
	ErrConstraint = errors.New("constraint violation")
	// ErrForbidden is returned by access-control checks.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries a field-to-message mapping for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// translateDBError maps driver-level failures onto the service taxonomy.
// Uniqueness violations rely on gorm's TranslateError option; check
// constraints have no gorm sentinel and are matched by message.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConstraint
	}
	msg := err.Error()
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "CHECK") ||
		strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE") {
		return ErrConstraint
	}
	return err
}
