package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// ErrCallerNotFound a caller id was supplied but no live account matches it.
	// Fatal for the whole search, never downgraded to anonymous.
	ErrCallerNotFound = fmt.Errorf("%w: caller account not found", ErrUnauthorized)

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Store errors
	ErrStoreUnavailable = errors.New("search store unavailable")
)
