// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Every more specific validation error below wraps it.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTaskUUID is returned when a task has no public identifier.
	ErrEmptyTaskUUID = fmt.Errorf("%w: task uuid cannot be empty", ErrValidation)

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLength.
	ErrDescriptionTooLong = fmt.Errorf("%w: task description is too long", ErrValidation)
)
