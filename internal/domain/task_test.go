package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewTask(t *testing.T) {
	t.Run("generates uuid and timestamps", func(t *testing.T) {
		assignee := uuid.New()

		task, err := NewTask(&assignee, "write docs")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.UUID)
		require.NotNil(t, task.AssigneeUUID)
		assert.Equal(t, assignee, *task.AssigneeUUID)
		assert.Equal(t, "write docs", task.Description)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("copies the assignee", func(t *testing.T) {
		assignee := uuid.New()
		task, err := NewTask(&assignee, "x")
		require.NoError(t, err)

		assignee = uuid.New()

		assert.NotEqual(t, assignee, *task.AssigneeUUID)
	})

	t.Run("unassigned task", func(t *testing.T) {
		task, err := NewTask(nil, "x")
		require.NoError(t, err)
		assert.Nil(t, task.AssigneeUUID)
	})

	t.Run("distinct uuids", func(t *testing.T) {
		a, err := NewTask(nil, "a")
		require.NoError(t, err)
		b, err := NewTask(nil, "b")
		require.NoError(t, err)
		assert.NotEqual(t, a.UUID, b.UUID)
	})

	t.Run("description too long", func(t *testing.T) {
		_, err := NewTask(nil, strings.Repeat("a", MaxDescriptionLength+1))
		assert.ErrorIs(t, err, ErrDescriptionTooLong)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{name: "valid", task: Task{UUID: uuid.New(), Description: "ok"}},
		{name: "empty description is allowed", task: Task{UUID: uuid.New()}},
		{
			name: "exactly max length",
			task: Task{UUID: uuid.New(), Description: strings.Repeat("a", MaxDescriptionLength)},
		},
		{
			name: "max length counts characters not bytes",
			task: Task{UUID: uuid.New(), Description: strings.Repeat("я", MaxDescriptionLength)},
		},
		{name: "missing uuid", task: Task{Description: "ok"}, wantErr: ErrEmptyTaskUUID},
		{
			name:    "too long",
			task:    Task{UUID: uuid.New(), Description: strings.Repeat("a", MaxDescriptionLength+1)},
			wantErr: ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskEnsureUUID(t *testing.T) {
	var task Task
	task.EnsureUUID()
	assert.NotEqual(t, uuid.Nil, task.UUID)

	existing := task.UUID
	task.EnsureUUID()
	assert.Equal(t, existing, task.UUID)
}

func TestTaskReplace(t *testing.T) {
	assignee := uuid.New()
	task, err := NewTask(&assignee, "old")
	require.NoError(t, err)
	id := task.UUID

	t.Run("clears assignee", func(t *testing.T) {
		require.NoError(t, task.Replace(nil, "new"))
		assert.Nil(t, task.AssigneeUUID)
		assert.Equal(t, "new", task.Description)
		assert.Equal(t, id, task.UUID)
		assert.False(t, task.UpdatedAt.Before(task.CreatedAt))
	})

	t.Run("invalid replace leaves task untouched", func(t *testing.T) {
		other := uuid.New()
		err := task.Replace(&other, strings.Repeat("a", MaxDescriptionLength+1))
		assert.ErrorIs(t, err, ErrDescriptionTooLong)
		assert.Nil(t, task.AssigneeUUID)
		assert.Equal(t, "new", task.Description)
	})
}

func TestTaskPatch(t *testing.T) {
	assignee := uuid.New()

	t.Run("nil fields are ignored", func(t *testing.T) {
		task, err := NewTask(&assignee, "keep")
		require.NoError(t, err)

		require.NoError(t, task.Patch(nil, nil))

		assert.Equal(t, assignee, *task.AssigneeUUID)
		assert.Equal(t, "keep", task.Description)
	})

	t.Run("description only", func(t *testing.T) {
		task, err := NewTask(&assignee, "keep")
		require.NoError(t, err)

		require.NoError(t, task.Patch(nil, ptr("changed")))

		assert.Equal(t, assignee, *task.AssigneeUUID)
		assert.Equal(t, "changed", task.Description)
	})

	t.Run("assignee only", func(t *testing.T) {
		task, err := NewTask(nil, "keep")
		require.NoError(t, err)
		other := uuid.New()

		require.NoError(t, task.Patch(&other, nil))

		assert.Equal(t, other, *task.AssigneeUUID)
		assert.Equal(t, "keep", task.Description)
	})

	t.Run("too long description rejected", func(t *testing.T) {
		task, err := NewTask(nil, "keep")
		require.NoError(t, err)

		err = task.Patch(nil, ptr(strings.Repeat("a", MaxDescriptionLength+1)))

		assert.ErrorIs(t, err, ErrDescriptionTooLong)
		assert.Equal(t, "keep", task.Description)
	})
}

func TestTaskEqual(t *testing.T) {
	id := uuid.New()
	a := &Task{ID: 1, UUID: id, Description: "a"}
	b := &Task{ID: 2, UUID: id, Description: "b"}
	c := &Task{ID: 1, UUID: uuid.New(), Description: "a"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Task)(nil).Equal(nil))
}
