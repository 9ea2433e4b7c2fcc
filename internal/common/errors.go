// Package common defines sentinel and typed errors shared by the repository,
// service and transport layers. Callers match them with errors.Is / errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal           = errors.New("internal error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	// Gateway errors.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError is a shorthand used by services and handlers.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError is returned when a unique field is already taken.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}

// TokenErrorKind distinguishes why a session token was rejected.
type TokenErrorKind int

const (
	TokenMalformed TokenErrorKind = iota
	TokenExpired
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// TokenError is returned by the token verifier. The kind is meant for logs;
// clients only ever see a generic 401.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
	}
	return "token " + e.Kind.String()
}

func (e *TokenError) Unwrap() error { return e.Err }

// Is makes every TokenError match ErrUnauthenticated.
func (e *TokenError) Is(target error) bool {
	return target == ErrUnauthenticated
}
