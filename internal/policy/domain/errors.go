package domain

import (
	"strings"

	apperrors "github.com/allisson/policies/internal/errors"
)

// The three compilation error kinds are deterministic, non-retryable, and
// fail-closed: when any of them is returned, no policy document was produced.
// Each carries the complete list of violations found, so a caller sees every
// problem at once instead of fixing them one re-run at a time. All three
// unwrap to apperrors.ErrInvalidInput so transport layers map them uniformly.

// CatalogError reports structural problems in a grant catalog detected at
// construction time.
type CatalogError struct {
	Violations []string
}

// Error returns every catalog violation joined into one message.
func (e *CatalogError) Error() string {
	return "invalid grant catalog: " + strings.Join(e.Violations, "; ")
}

// Unwrap makes the error match apperrors.ErrInvalidInput.
func (e *CatalogError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ResolutionError reports templated resource patterns whose placeholders have
// no value in the resolved-identifier map.
type ResolutionError struct {
	// Missing lists the unresolved placeholder names in first-reference order.
	Missing []string
	// Violations describes each unresolved reference with its grant context.
	Violations []string
}

// Error returns every resolution violation joined into one message.
func (e *ResolutionError) Error() string {
	return "unresolved resource placeholders: " + strings.Join(e.Violations, "; ")
}

// Unwrap makes the error match apperrors.ErrInvalidInput.
func (e *ResolutionError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ValidationError reports post-compilation invariant violations (duplicate
// sid, empty document for a non-empty partition, uncovered action).
type ValidationError struct {
	Violations []string
}

// Error returns every post-compilation violation joined into one message.
func (e *ValidationError) Error() string {
	return "invalid compiled document: " + strings.Join(e.Violations, "; ")
}

// Unwrap makes the error match apperrors.ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}
