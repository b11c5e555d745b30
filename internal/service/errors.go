package service

import (
	"errors"
	"fmt"

	"github.com/dfnabiullin/task-service/internal/store"
	"github.com/google/uuid"
)

// Sentinel errors returned by the task service.
// Callers check them with errors.Is; the API layer maps them to problem responses.
var (
	// ErrUserNotValid indicates the assignee was rejected by the user service.
	// API layer should map this to HTTP 400 Bad Request.
	ErrUserNotValid = errors.New("user not found or not valid")

	// ErrTaskNotFound indicates no task exists with the requested UUID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = store.ErrTaskNotFound
)

// UserNotValidError reports the assignee that failed validation and why.
type UserNotValidError struct {
	UUID uuid.UUID
	Err  error
}

func (e *UserNotValidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s with uuid %s: %v", ErrUserNotValid, e.UUID, e.Err)
	}
	return fmt.Sprintf("%s with uuid %s", ErrUserNotValid, e.UUID)
}

// Is makes errors.Is(err, ErrUserNotValid) succeed.
func (e *UserNotValidError) Is(target error) bool {
	return target == ErrUserNotValid
}

// Unwrap returns the user service failure.
func (e *UserNotValidError) Unwrap() error {
	return e.Err
}

// TaskNotFoundError reports the UUID of a missing task.
type TaskNotFoundError struct {
	UUID uuid.UUID
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found with uuid %s", e.UUID)
}

// Unwrap allows errors.Is(err, ErrTaskNotFound).
func (e *TaskNotFoundError) Unwrap() error {
	return ErrTaskNotFound
}

// TaskServiceError wraps unexpected failures with the operation that hit them.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
