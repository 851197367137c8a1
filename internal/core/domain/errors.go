package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an input format no normaliser handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSessionNotFound indicates no document session exists for a filename.
	// Persisting or finalising such a filename fails fast.
	ErrSessionNotFound = fmt.Errorf("document session %w", ErrNotFound)

	// ErrBuilderClosed indicates a document builder was used after
	// Finalize or Discard.
	ErrBuilderClosed = errors.New("document builder closed")
)
