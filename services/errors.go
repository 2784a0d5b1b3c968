package services

import "errors"

// Controllers map these to HTTP status codes; wrap them with fmt.Errorf("%w: ...") for detail.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
