package domain

import "errors"

// Sentinel errors shared across the registry and the upload pipeline.
// Controllers map these to HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateName      = errors.New("event with this name already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoFileReceived     = errors.New("no file received")
	ErrNoFolderConfigured = errors.New("no folder configured")
	ErrStoreUnavailable   = errors.New("event store unavailable")
)
