package repositories

import "errors"

var (
	// ErrProductNotFound is returned when no product matches the given id.
	ErrProductNotFound = errors.New("product not found")
	// ErrProviderNotFound is returned when no provider matches the given id.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrInvalidField is returned when a filter or sort field is not in the
	// entity's allowlist. Field names are never interpolated into queries
	// without passing through that allowlist first.
	ErrInvalidField = errors.New("invalid field")
)
