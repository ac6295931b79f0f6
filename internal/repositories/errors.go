package repositories

import "errors"

var (
	// ErrNotFound is returned when a relational record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a comment document changed, or was
	// created, between being read and being written back
	ErrVersionConflict = errors.New("comment document version conflict")
)
