package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSchema signals an invalid attribute definition.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidRequest signals a search request that fails validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// KeyPrefix is the default storage key prefix.
const KeyPrefix = "solrgeo:"
