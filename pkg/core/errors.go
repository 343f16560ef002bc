package core

import "errors"

// Common errors.
var (
	ErrNameCollision = errors.New("name already exists in collection")
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidName   = errors.New("invalid entity name")
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrReadOnly      = errors.New("project is in read-only mode")
)
