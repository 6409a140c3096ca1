// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain-level errors. Callers match them with errors.Is; the services wrap
// them with the entity and id that failed.
var (
	// An id-addressed record does not exist in its owning collection.
	ErrNotFound = errors.New("not_found")

	// Inquiry desk only.
	ErrInvalidInquiry         = errors.New("invalid_inquiry")
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// NotFound wraps ErrNotFound with the kind of record and the id that missed.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// ValidationError lists the fields of an inquiry that failed validation,
// keyed by the json field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInquiry.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInquiry
}
