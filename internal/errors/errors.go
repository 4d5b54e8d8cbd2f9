package errors

import (
	"errors"
	"fmt"
)

// Common error types for the POS console
var (
	// Token errors
	ErrMalformedToken  = errors.New("malformed token")
	ErrMissingRole     = errors.New("token missing role claim")
	ErrMissingUsername = errors.New("token missing username claim")
	ErrUnknownRole     = errors.New("unknown role")
	ErrNoToken         = errors.New("no token stored")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenRevoked    = errors.New("token revoked")

	// Login response errors
	ErrNoCredential = errors.New("login response carries no token")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionRevoked   = errors.New("session revoked")

	// Transport errors
	ErrTransport = errors.New("transport error")

	// Authentication errors (mock API)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrUserNotFound       = errors.New("user not found")

	// Routing errors
	ErrUnknownRoute = errors.New("unknown route")

	// General errors
	ErrNotFound = errors.New("not found")
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

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
