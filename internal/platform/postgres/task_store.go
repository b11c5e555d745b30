package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/dfnabiullin/task-service/internal/store"
	"github.com/google/uuid"
)

const tasksTable = "tasks"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	taskColumns = []string{"id", "uuid", "assignee_uuid", "description", "created_at", "updated_at"}
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task.EnsureUUID()
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_uuid", task.UUID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	query, args, err := psql.
		Insert(tasksTable).
		SetMap(map[string]any{
			"uuid":          task.UUID,
			"assignee_uuid": nullUUID(task.AssigneeUUID),
			"description":   task.Description,
			"created_at":    task.CreatedAt,
			"updated_at":    task.UpdatedAt,
		}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&task.ID); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_uuid", task.UUID.String()))
		return MapError(err, nil)
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("task_uuid", task.UUID.String()))
	return nil
}

// GetByUUID implements store.TaskStore.GetByUUID
func (s *PostgresTaskStore) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.
		Select(taskColumns...).
		From(tasksTable).
		Where("uuid = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_uuid", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_uuid", id.String()))
		return nil, MapError(err, store.ErrTaskNotFound)
	}

	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.
		Select(taskColumns...).
		From(tasksTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err, nil)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_uuid", task.UUID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = time.Now().UTC()
	}

	query, args, err := psql.
		Update(tasksTable).
		Set("assignee_uuid", nullUUID(task.AssigneeUUID)).
		Set("description", task.Description).
		Set("updated_at", task.UpdatedAt).
		Where("uuid = ?", task.UUID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_uuid", task.UUID.String()))
		return MapError(err, store.ErrTaskNotFound)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("no task updated", slog.String("task_uuid", task.UUID.String()))
		return err
	}

	log.Debug("task updated", slog.String("task_uuid", task.UUID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.
		Delete(tasksTable).
		Where("uuid = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_uuid", id.String()))
		return MapError(err, store.ErrTaskNotFound)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("no task deleted", slog.String("task_uuid", id.String()))
		return err
	}

	log.Debug("task deleted", slog.String("task_uuid", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		assignee    uuid.NullUUID
		description sql.NullString
	)

	if err := row.Scan(
		&task.ID,
		&task.UUID,
		&assignee,
		&description,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if assignee.Valid {
		id := assignee.UUID
		task.AssigneeUUID = &id
	}
	task.Description = description.String

	return &task, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
