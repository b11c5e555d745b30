package store

import (
	"context"
	"database/sql"

	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/google/uuid"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task. The task UUID is generated if it is empty.
	// On success the store-assigned ID and timestamps are written back to task.
	// Returns ErrDuplicate if a task with the same UUID already exists.
	Create(ctx context.Context, task *domain.Task) error

	// GetByUUID retrieves a task by its public identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns every task ordered by creation (surrogate id ascending).
	List(ctx context.Context) ([]*domain.Task, error)

	// Update persists the assignee and description of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its public identifier.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a TaskStore that runs every query on tx.
	WithTx(tx *sql.Tx) TaskStore
}
