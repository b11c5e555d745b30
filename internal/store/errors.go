package store

import (
	"errors"
	"fmt"
)

// Store errors shared by every TaskStore implementation. Callers test for
// them with errors.Is or the Is*Error helpers.
var (
	// ErrNotFound is the root of every "row does not exist" error.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a unique column, such as the task uuid, already holds the value.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means the row failed validation or a check/not-null constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTaskNotFound is returned when no task has the requested uuid.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsInvalidEntityError reports whether err is, or wraps, ErrInvalidEntity.
func IsInvalidEntityError(err error) bool {
	return errors.Is(err, ErrInvalidEntity)
}
