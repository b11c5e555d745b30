package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/dfnabiullin/task-service/internal/events"
	"github.com/dfnabiullin/task-service/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc     TaskService
	tasks   *MockTaskStore
	users   *MockUserValidator
	tx      *fakeTransactor
	emitter *recordingEmitter
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		tasks:   &MockTaskStore{},
		users:   &MockUserValidator{},
		tx:      &fakeTransactor{},
		emitter: &recordingEmitter{},
	}
	svc, err := NewTaskService(f.tasks, f.tx, f.users, f.emitter, nil)
	require.NoError(t, err)
	f.svc = svc

	t.Cleanup(func() {
		f.tasks.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})
	return f
}

func existingTask(t *testing.T, assignee *uuid.UUID, description string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(assignee, description)
	require.NoError(t, err)
	task.ID = 1
	task.CreatedAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	task.UpdatedAt = task.CreatedAt
	return task
}

func TestNewTaskService(t *testing.T) {
	tasks := &MockTaskStore{}
	users := &MockUserValidator{}
	tx := &fakeTransactor{}

	_, err := NewTaskService(nil, tx, users, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewTaskService(tasks, nil, users, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewTaskService(tasks, tx, nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	svc, err := NewTaskService(tasks, tx, users, nil, nil)
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("unassigned task skips user check", func(t *testing.T) {
		f := newFixture(t)
		f.tasks.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Task).ID = 9 }).
			Return(nil)

		task, err := f.svc.CreateTask(ctx, TaskInput{Description: "write docs"})

		require.NoError(t, err)
		assert.Equal(t, int64(9), task.ID)
		assert.NotEqual(t, uuid.Nil, task.UUID)
		assert.Equal(t, "write docs", task.Description)
		assert.Nil(t, task.AssigneeUUID)
		assert.Equal(t, 1, f.tx.calls)
		assert.Equal(t, []string{events.TaskCreated}, f.emitter.types())
		assert.Equal(t, task.UUID, f.emitter.events[0].TaskUUID)
	})

	t.Run("valid assignee", func(t *testing.T) {
		f := newFixture(t)
		assignee := uuid.New()
		f.users.On("CheckUserExists", mock.Anything, assignee).Return(nil)
		f.tasks.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(nil)

		task, err := f.svc.CreateTask(ctx, TaskInput{AssigneeUUID: &assignee, Description: "review"})

		require.NoError(t, err)
		require.NotNil(t, task.AssigneeUUID)
		assert.Equal(t, assignee, *task.AssigneeUUID)
		require.NotNil(t, f.emitter.events[0].AssigneeUUID)
		assert.Equal(t, assignee, *f.emitter.events[0].AssigneeUUID)
	})

	t.Run("rejected assignee", func(t *testing.T) {
		f := newFixture(t)
		assignee := uuid.New()
		remote := errors.New("404 from user service")
		f.users.On("CheckUserExists", mock.Anything, assignee).Return(remote)

		task, err := f.svc.CreateTask(ctx, TaskInput{AssigneeUUID: &assignee, Description: "review"})

		assert.Nil(t, task)
		assert.ErrorIs(t, err, ErrUserNotValid)
		assert.ErrorIs(t, err, remote)
		var notValid *UserNotValidError
		require.True(t, errors.As(err, &notValid))
		assert.Equal(t, assignee, notValid.UUID)
		f.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Zero(t, f.tx.calls)
		assert.Empty(t, f.emitter.types())
	})

	t.Run("description too long", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateTask(ctx, TaskInput{Description: strings.Repeat("x", domain.MaxDescriptionLength+1)})

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		dbErr := errors.New("connection refused")
		f.tasks.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := f.svc.CreateTask(ctx, TaskInput{Description: "x"})

		assert.ErrorIs(t, err, dbErr)
		var svcErr *TaskServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "create_task", svcErr.Operation)
		assert.Empty(t, f.emitter.types())
	})

	t.Run("emitter failure does not fail the request", func(t *testing.T) {
		f := newFixture(t)
		f.emitter.err = errors.New("handler down")
		f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)

		task, err := f.svc.CreateTask(ctx, TaskInput{Description: "x"})

		require.NoError(t, err)
		assert.NotNil(t, task)
	})
}

func TestGetTask(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		want := existingTask(t, nil, "found")
		f.tasks.On("GetByUUID", mock.Anything, want.UUID).Return(want, nil)

		got, err := f.svc.GetTask(ctx, want.UUID)

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.tasks.On("GetByUUID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		_, err := f.svc.GetTask(ctx, id)

		assert.ErrorIs(t, err, ErrTaskNotFound)
		var notFound *TaskNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, id, notFound.UUID)
		assert.Equal(t, "task not found with uuid "+id.String(), err.Error())
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		dbErr := errors.New("timeout")
		f.tasks.On("GetByUUID", mock.Anything, id).Return(nil, dbErr)

		_, err := f.svc.GetTask(ctx, id)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns store order", func(t *testing.T) {
		f := newFixture(t)
		tasks := []*domain.Task{existingTask(t, nil, "a"), existingTask(t, nil, "b")}
		f.tasks.On("List", mock.Anything).Return(tasks, nil)

		got, err := f.svc.ListTasks(ctx)

		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.tasks.On("List", mock.Anything).Return(nil, errors.New("boom"))

		_, err := f.svc.ListTasks(ctx)

		var svcErr *TaskServiceError
		assert.True(t, errors.As(err, &svcErr))
	})
}

func TestReplaceTask(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields", func(t *testing.T) {
		f := newFixture(t)
		oldAssignee, newAssignee := uuid.New(), uuid.New()
		task := existingTask(t, &oldAssignee, "old")
		f.users.On("CheckUserExists", mock.Anything, newAssignee).Return(nil)
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Task) bool {
			return updated.Description == "new" && *updated.AssigneeUUID == newAssignee
		})).Return(nil)

		got, err := f.svc.ReplaceTask(ctx, task.UUID, TaskInput{AssigneeUUID: &newAssignee, Description: "new"})

		require.NoError(t, err)
		assert.Equal(t, "new", got.Description)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
		assert.Equal(t, []string{events.TaskUpdated}, f.emitter.types())
	})

	t.Run("nil assignee clears assignment", func(t *testing.T) {
		f := newFixture(t)
		assignee := uuid.New()
		task := existingTask(t, &assignee, "old")
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.ReplaceTask(ctx, task.UUID, TaskInput{Description: "new"})

		require.NoError(t, err)
		assert.Nil(t, got.AssigneeUUID)
	})

	t.Run("assignee validated before lookup", func(t *testing.T) {
		f := newFixture(t)
		id, assignee := uuid.New(), uuid.New()
		f.users.On("CheckUserExists", mock.Anything, assignee).Return(errors.New("unknown"))

		_, err := f.svc.ReplaceTask(ctx, id, TaskInput{AssigneeUUID: &assignee, Description: "x"})

		assert.ErrorIs(t, err, ErrUserNotValid)
		f.tasks.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.tasks.On("GetByUUID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		_, err := f.svc.ReplaceTask(ctx, id, TaskInput{Description: "x"})

		var notFound *TaskNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, id, notFound.UUID)
		assert.Empty(t, f.emitter.types())
	})

	t.Run("invalid description leaves task untouched", func(t *testing.T) {
		f := newFixture(t)
		task := existingTask(t, nil, "keep")
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)

		_, err := f.svc.ReplaceTask(ctx, task.UUID, TaskInput{Description: strings.Repeat("x", domain.MaxDescriptionLength+1)})

		assert.ErrorIs(t, err, domain.ErrDescriptionTooLong)
		assert.Equal(t, "keep", task.Description)
		f.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestPatchTask(t *testing.T) {
	ctx := context.Background()

	t.Run("description only", func(t *testing.T) {
		f := newFixture(t)
		assignee := uuid.New()
		task := existingTask(t, &assignee, "old")
		desc := "patched"
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.PatchTask(ctx, task.UUID, TaskPatch{Description: &desc})

		require.NoError(t, err)
		assert.Equal(t, "patched", got.Description)
		require.NotNil(t, got.AssigneeUUID)
		assert.Equal(t, assignee, *got.AssigneeUUID)
		f.users.AssertNotCalled(t, "CheckUserExists", mock.Anything, mock.Anything)
	})

	t.Run("assignee only", func(t *testing.T) {
		f := newFixture(t)
		task := existingTask(t, nil, "same")
		assignee := uuid.New()
		f.users.On("CheckUserExists", mock.Anything, assignee).Return(nil)
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.PatchTask(ctx, task.UUID, TaskPatch{AssigneeUUID: &assignee})

		require.NoError(t, err)
		assert.Equal(t, "same", got.Description)
		assert.Equal(t, assignee, *got.AssigneeUUID)
		assert.Equal(t, []string{events.TaskUpdated}, f.emitter.types())
	})

	t.Run("rejected assignee", func(t *testing.T) {
		f := newFixture(t)
		assignee := uuid.New()
		f.users.On("CheckUserExists", mock.Anything, assignee).Return(errors.New("no"))

		_, err := f.svc.PatchTask(ctx, uuid.New(), TaskPatch{AssigneeUUID: &assignee})

		assert.ErrorIs(t, err, ErrUserNotValid)
	})

	t.Run("update reports missing row", func(t *testing.T) {
		f := newFixture(t)
		task := existingTask(t, nil, "gone")
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(store.ErrTaskNotFound)

		_, err := f.svc.PatchTask(ctx, task.UUID, TaskPatch{})

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing task", func(t *testing.T) {
		f := newFixture(t)
		task := existingTask(t, nil, "bye")
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Delete", mock.Anything, task.UUID).Return(nil)

		require.NoError(t, f.svc.DeleteTask(ctx, task.UUID))
		assert.Equal(t, []string{events.TaskDeleted}, f.emitter.types())
	})

	t.Run("missing task", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.tasks.On("GetByUUID", mock.Anything, id).Return(nil, store.ErrTaskNotFound)

		err := f.svc.DeleteTask(ctx, id)

		assert.ErrorIs(t, err, ErrTaskNotFound)
		f.tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.Empty(t, f.emitter.types())
	})

	t.Run("delete failure", func(t *testing.T) {
		f := newFixture(t)
		task := existingTask(t, nil, "stuck")
		dbErr := errors.New("lock timeout")
		f.tasks.On("GetByUUID", mock.Anything, task.UUID).Return(task, nil)
		f.tasks.On("Delete", mock.Anything, task.UUID).Return(dbErr)

		err := f.svc.DeleteTask(ctx, task.UUID)

		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, f.emitter.types())
	})
}
