// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/liquidity/internal/errors"
)

var (
	// businessIDRegex matches business identifiers such as "BIZ-001".
	businessIDRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// DateOnly validates that a string is a calendar date in YYYY-MM-DD form.
var DateOnly = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse(time.DateOnly, s)
		return err == nil
	},
	validation.NewError("validation_date_only", "must be a date in YYYY-MM-DD format"),
)

// BusinessID validates that a string looks like a business identifier.
var BusinessID = validation.NewStringRuleWithError(
	func(s string) bool {
		return businessIDRegex.MatchString(s)
	},
	validation.NewError(
		"validation_business_id",
		"must contain only uppercase letters, digits, hyphens and underscores",
	),
)
