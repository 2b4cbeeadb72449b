package api

import "errors"

// Sentinel errors mapped from HTTP responses. The backend's detail message
// is preserved in the wrapping error text; match with errors.Is.
var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("already exists")
	ErrServer       = errors.New("server error")
)
