package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// secret. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedRequest   = errors.New("identifier and secret are required")
	ErrDependencyFailure  = errors.New("dependency unavailable")

	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidAccount  = errors.New("username, email, name and password are required")

	// ErrPasswordTooLong is bcrypt's input limit, counted in bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
