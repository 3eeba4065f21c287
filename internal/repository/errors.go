package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")

	// ErrInvalidField reports that a filter, update, or ordering key named
	// a column the entity's schema does not declare. Keys become SQL
	// identifiers, so unknown ones are rejected before any statement is
	// built.
	ErrInvalidField = errors.New("repository: invalid field")
)
