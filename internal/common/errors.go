package common

import (
	"errors"
)

// Store and auth failures are mapped onto this closed set at the boundary
// where they occur; driver-specific codes never travel further up.
var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrConflict     = errors.New("resource conflict") // e.g., username already exists
	ErrUnauthorized = errors.New("invalid credentials")
	ErrValidation   = errors.New("validation failed")
	ErrUnavailable  = errors.New("store unavailable")
)
