package models

import "errors"

// Application-wide standard errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input data")
	ErrForbidden    = errors.New("forbidden")

	ErrInternalServer = errors.New("internal server error")
)
