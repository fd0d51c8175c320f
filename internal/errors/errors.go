package errors

import (
	"errors"
	"fmt"
)

// Common error types for the loyalty admin client
var (
	// Authentication errors
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")

	// Validation errors (local, pre-submit; never sent to the server)
	ErrValidation    = errors.New("validation failed")
	ErrRequiredField = errors.New("required field is empty")
	ErrNoDraft       = errors.New("no draft open")
	ErrDraftOpen     = errors.New("a draft is already open")

	// Remote errors
	ErrServer  = errors.New("server error")
	ErrNetwork = errors.New("network failure")
	ErrTimeout = errors.New("request timed out")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
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
