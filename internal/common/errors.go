// Package common defines shared sentinel errors and small random helpers used
// across the identity store, the service layer and the console. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrLockedOut is returned by sign-in while the account lockout window is active.
	ErrLockedOut = errors.New("user is locked out")

	// Auth errors (invalid, malformed or stale token).
	ErrInvalidToken = errors.New("invalid token")
)
