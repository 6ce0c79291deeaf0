package domain

import "errors"

// Authentication errors.
var (
	ErrNoCredentials    = errors.New("no stored credentials")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnauthorized     = errors.New("authentication rejected")
	ErrMalformedUser    = errors.New("malformed user payload")
)

// API errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrServerUnavailable = errors.New("server unavailable")
)

// Cache errors.
var (
	ErrNoCacheEntry = errors.New("no cache entry")
)
