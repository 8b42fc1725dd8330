package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 128 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// ===== Session Errors =====
var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")
)
