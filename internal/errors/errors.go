package errors

import (
	"errors"
	"fmt"
)

// Common error types for the booking client
var (
	// Session errors
	ErrNoSession      = errors.New("no active session")
	ErrNotRestored    = errors.New("session not restored")
	ErrSessionExpired = errors.New("session expired")

	// Credential errors
	ErrCredentialStore = errors.New("credential store failure")

	// Request errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidRole  = errors.New("invalid role")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
