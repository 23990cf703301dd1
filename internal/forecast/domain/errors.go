package domain

import (
	"github.com/allisson/liquidity/internal/errors"
)

// Forecast validation and schema errors.
var (
	// ErrInvalidRange indicates the requested end date precedes the start date.
	ErrInvalidRange = errors.Wrap(errors.ErrInvalidInput, "end date precedes start date")

	// ErrInvalidRowCount indicates a negative target row count was requested.
	ErrInvalidRowCount = errors.Wrap(errors.ErrInvalidInput, "row count must not be negative")

	// ErrEmptyBusinessSet indicates no business identifiers were supplied.
	ErrEmptyBusinessSet = errors.Wrap(errors.ErrInvalidInput, "business identifier set is empty")

	// ErrSchemaMismatch indicates a record does not satisfy the event message schema.
	ErrSchemaMismatch = errors.Wrap(errors.ErrInvalidInput, "record does not match the event message schema")
)
