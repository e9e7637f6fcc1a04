package model

import "errors"

// Store-level errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreTimeout     = errors.New("store timeout")
)

// Business-rule errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
)

// Token codec errors.
var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformed        = errors.New("token is malformed")
	ErrEncoding         = errors.New("failed to encode token")
)
