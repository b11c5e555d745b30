package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/dfnabiullin/task-service/internal/events"
	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/dfnabiullin/task-service/internal/redact"
	"github.com/dfnabiullin/task-service/internal/store"
	"github.com/google/uuid"
)

// UserValidator confirms that a user exists before it is assigned a task.
type UserValidator interface {
	CheckUserExists(ctx context.Context, id uuid.UUID) error
}

// TaskInput holds the fields of a full task write. A nil AssigneeUUID leaves
// the task unassigned.
type TaskInput struct {
	AssigneeUUID *uuid.UUID
	Description  string
}

// TaskPatch holds a partial task write. Nil fields are left unchanged.
type TaskPatch struct {
	AssigneeUUID *uuid.UUID
	Description  *string
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask validates the assignee and stores a new task with a fresh UUID.
	CreateTask(ctx context.Context, in TaskInput) (*domain.Task, error)

	// GetTask returns the task with the given UUID or a TaskNotFoundError.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListTasks returns every task in creation order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// ReplaceTask overwrites the assignee and description of an existing task.
	ReplaceTask(ctx context.Context, id uuid.UUID, in TaskInput) (*domain.Task, error)

	// PatchTask updates only the fields set in patch.
	PatchTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// DeleteTask removes an existing task.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks   store.TaskStore
	tx      store.Transactor
	users   UserValidator
	emitter events.EventEmitter
	logger  *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
// A nil emitter disables event publication.
func NewTaskService(
	tasks store.TaskStore,
	tx store.Transactor,
	users UserValidator,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("%w: task store cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transactor cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, fmt.Errorf("%w: user validator cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:   tasks,
		tx:      tx,
		users:   users,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, in TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateAssignee(ctx, in.AssigneeUUID); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(in.AssigneeUUID, in.Description)
	if err != nil {
		log.Debug("invalid task input", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("task_uuid", task.UUID.String()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.String("task_uuid", task.UUID.String()))
	s.emit(ctx, events.TaskCreated, task)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByUUID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, "get_task", id, err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// ReplaceTask implements TaskService.ReplaceTask
func (s *taskServiceImpl) ReplaceTask(ctx context.Context, id uuid.UUID, in TaskInput) (*domain.Task, error) {
	return s.update(ctx, "replace_task", id, in.AssigneeUUID, func(task *domain.Task) error {
		return task.Replace(in.AssigneeUUID, in.Description)
	})
}

// PatchTask implements TaskService.PatchTask
func (s *taskServiceImpl) PatchTask(ctx context.Context, id uuid.UUID, patch TaskPatch) (*domain.Task, error) {
	return s.update(ctx, "patch_task", id, patch.AssigneeUUID, func(task *domain.Task) error {
		return task.Patch(patch.AssigneeUUID, patch.Description)
	})
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *domain.Task
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByUUID(ctx, id)
		if err != nil {
			return err
		}
		if err := txTasks.Delete(ctx, id); err != nil {
			return err
		}
		deleted = task
		return nil
	})
	if err != nil {
		return s.lookupError(ctx, "delete_task", id, err)
	}

	log.Info("task deleted", slog.String("task_uuid", id.String()))
	s.emit(ctx, events.TaskDeleted, deleted)
	return nil
}

// update validates the assignee, then loads the task, applies mutate and saves
// it in one transaction.
func (s *taskServiceImpl) update(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	assignee *uuid.UUID,
	mutate func(*domain.Task) error,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateAssignee(ctx, assignee); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByUUID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(task); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			log.Debug("invalid task update",
				slog.String("operation", operation),
				slog.String("error", err.Error()))
			return nil, err
		}
		return nil, s.lookupError(ctx, operation, id, err)
	}

	log.Info("task updated",
		slog.String("operation", operation),
		slog.String("task_uuid", id.String()))
	s.emit(ctx, events.TaskUpdated, updated)
	return updated, nil
}

// validateAssignee asks the user service about a non-nil assignee. Any
// failure, including an unreachable service, rejects the assignee.
func (s *taskServiceImpl) validateAssignee(ctx context.Context, assignee *uuid.UUID) error {
	if assignee == nil {
		return nil
	}

	if err := s.users.CheckUserExists(ctx, *assignee); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("assignee rejected",
			slog.String("assignee_uuid", assignee.String()),
			slog.String("error", redact.Error(err)))
		return &UserNotValidError{UUID: *assignee, Err: err}
	}
	return nil
}

// lookupError turns a missing task into TaskNotFoundError and wraps anything else.
func (s *taskServiceImpl) lookupError(ctx context.Context, operation string, id uuid.UUID, err error) error {
	if store.IsNotFoundError(err) {
		return &TaskNotFoundError{UUID: id}
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		slog.String("operation", operation),
		slog.String("task_uuid", id.String()),
		slog.String("error", redact.Error(err)))
	return NewTaskServiceError(operation, "failed to access task", err)
}

// emit publishes a task event after commit. Handler failures are logged, not returned.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, task *domain.Task) {
	if s.emitter == nil || task == nil {
		return
	}

	event := events.NewTaskEvent(eventType, task.UUID, task.AssigneeUUID)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit task event",
			slog.String("event_type", eventType),
			slog.String("task_uuid", task.UUID.String()),
			slog.String("error", err.Error()))
	}
}
