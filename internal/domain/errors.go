package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrUnknownUser        = errors.New("unknown user")
	ErrEmptyMessage       = errors.New("message body is empty")
	ErrNotFound           = errors.New("requested resource not found")
)
