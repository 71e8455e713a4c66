package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectExists indicates a create collision on the project id.
	ErrProjectExists = errors.New("project already exists")
	// ErrStaleEtag indicates the caller's etag no longer matches the
	// stored document. The caller should reload and retry deliberately;
	// retrying automatically would discard the conflicting write.
	ErrStaleEtag = errors.New("project was modified since it was read")
	// ErrInvalidInput indicates malformed caller input.
	ErrInvalidInput = errors.New("invalid project input")
)
