package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/allisson/liquidity/internal/errors"
)

// Validation errors for pull parameters. All wrap ErrInvalidInput so callers
// can match the whole category with errors.Is.
var (
	// ErrInvalidRange indicates the end date precedes the start date.
	ErrInvalidRange = apperrors.Wrap(apperrors.ErrInvalidInput, "end date must not precede start date")
	// ErrEmptyInstitutionSet indicates no institutions were configured for the pull.
	ErrEmptyInstitutionSet = apperrors.Wrap(apperrors.ErrInvalidInput, "institution set must not be empty")
	// ErrEmptyBusinessSet indicates no business identifiers were provided.
	ErrEmptyBusinessSet = apperrors.Wrap(apperrors.ErrInvalidInput, "business id set must not be empty")
	// ErrInvalidItemCount indicates a non-positive sandbox item count.
	ErrInvalidItemCount = apperrors.Wrap(apperrors.ErrInvalidInput, "item count must be positive")
)

// UpstreamAPIError carries the provider's status code and error identity for a
// failed remote call. It matches apperrors.ErrUpstream with errors.Is, so the
// taxonomy stays uniform while the provider detail is preserved for operators.
type UpstreamAPIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *UpstreamAPIError) Error() string {
	return fmt.Sprintf("upstream api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// Is matches the base upstream sentinel.
func (e *UpstreamAPIError) Is(target error) bool {
	return errors.Is(apperrors.ErrUpstream, target)
}
