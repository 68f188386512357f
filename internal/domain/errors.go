package domain

import "errors"

var (
	// ErrRecordNotFound is returned by lookups for an unknown record ID.
	ErrRecordNotFound = errors.New("pension record not found")

	// ErrInvalidField marks a field value outside its accepted range.
	ErrInvalidField = errors.New("invalid field value")
)
