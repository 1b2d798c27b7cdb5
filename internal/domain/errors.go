package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternalError = errors.New("internal error")
)

// PersistenceError wraps a database failure with the operation that caused it.
// The underlying cause is kept for server-side logging; handlers never surface it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err as a PersistenceError for the given operation
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// ExportError wraps a report serialization failure
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("report export failed: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
