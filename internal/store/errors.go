package store

import "errors"

var (
	// ErrNotFound is returned when no document exists for the requested id.
	ErrNotFound = errors.New("project not found")

	// ErrAlreadyExists is returned when creating a project whose id is taken.
	ErrAlreadyExists = errors.New("project already exists")

	// ErrStaleEtag is returned when a save's etag does not match the
	// currently stored bytes.
	ErrStaleEtag = errors.New("etag does not match stored document")

	// ErrInvalidInput is returned when caller input fails validation.
	ErrInvalidInput = errors.New("invalid input")
)
