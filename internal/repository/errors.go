package repository

import "errors"

var (
	// ErrDuplicateEntry is returned when a write violates a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrTagUnresolved is returned when a tag could be neither found nor created.
	ErrTagUnresolved = errors.New("repository: tag could not be resolved")
)
