package domain

import "errors"

// User-correctable validation failures. These are always recovered at the form
// boundary and rendered as field-level messages; they never propagate as fatal.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrAboutMeTooLong    = errors.New("about me exceeds 140 characters")
	ErrBodyTooLong       = errors.New("post body exceeds 140 characters")
	ErrEmptyBody         = errors.New("post body is empty")
)

// Authentication failures share a single sentinel so callers cannot tell a
// missing account from a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Lookup failures.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrSessionNotFound = errors.New("session not found")
)
