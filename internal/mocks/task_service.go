package mocks

import (
	"context"
	"sync"

	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/dfnabiullin/task-service/internal/service"
	"github.com/google/uuid"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn  func(ctx context.Context, in service.TaskInput) (*domain.Task, error)
	GetTaskFn     func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasksFn   func(ctx context.Context) ([]*domain.Task, error)
	ReplaceTaskFn func(ctx context.Context, id uuid.UUID, in service.TaskInput) (*domain.Task, error)
	PatchTaskFn   func(ctx context.Context, id uuid.UUID, patch service.TaskPatch) (*domain.Task, error)
	DeleteTaskFn  func(ctx context.Context, id uuid.UUID) error

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error

	mu    sync.Mutex
	calls []string
}

var _ service.TaskService = (*MockTaskService)(nil)

// Calls returns the names of the methods invoked so far, in order.
func (m *MockTaskService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockTaskService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// CreateTask implements the service.TaskService interface
func (m *MockTaskService) CreateTask(ctx context.Context, in service.TaskInput) (*domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, in)
	}
	return m.Task, m.Err
}

// GetTask implements the service.TaskService interface
func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.record("GetTask")
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.Err
}

// ListTasks implements the service.TaskService interface
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	m.record("ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.Err
}

// ReplaceTask implements the service.TaskService interface
func (m *MockTaskService) ReplaceTask(ctx context.Context, id uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	m.record("ReplaceTask")
	if m.ReplaceTaskFn != nil {
		return m.ReplaceTaskFn(ctx, id, in)
	}
	return m.Task, m.Err
}

// PatchTask implements the service.TaskService interface
func (m *MockTaskService) PatchTask(ctx context.Context, id uuid.UUID, patch service.TaskPatch) (*domain.Task, error) {
	m.record("PatchTask")
	if m.PatchTaskFn != nil {
		return m.PatchTaskFn(ctx, id, patch)
	}
	return m.Task, m.Err
}

// DeleteTask implements the service.TaskService interface
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Err
}
