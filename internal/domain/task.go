package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDescriptionLength is the maximum number of characters in a task description.
const MaxDescriptionLength = 1000

// Task is a unit of work that may be assigned to a user of the user service.
//
// ID is the storage surrogate key and is never exposed over the API. UUID is
// the public identity; it is assigned once and never changes.
type Task struct {
	ID           int64      `json:"-"`
	UUID         uuid.UUID  `json:"uuid"`
	AssigneeUUID *uuid.UUID `json:"assignee_uuid,omitempty"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTask creates a Task with a freshly generated UUID.
// Returns an error if validation fails.
func NewTask(assignee *uuid.UUID, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		UUID:         uuid.New(),
		AssigneeUUID: cloneUUID(assignee),
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// EnsureUUID assigns a random UUID if the task does not have one yet.
// An existing UUID is left untouched.
func (t *Task) EnsureUUID() {
	if t.UUID == uuid.Nil {
		t.UUID = uuid.New()
	}
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UUID == uuid.Nil {
		return ErrEmptyTaskUUID
	}

	if n := utf8.RuneCountInString(t.Description); n > MaxDescriptionLength {
		return fmt.Errorf("%w: %d characters, maximum is %d", ErrDescriptionTooLong, n, MaxDescriptionLength)
	}

	return nil
}

// Replace overwrites every mutable field. A nil assignee clears the assignment.
func (t *Task) Replace(assignee *uuid.UUID, description string) error {
	next := *t
	next.AssigneeUUID = cloneUUID(assignee)
	next.Description = description

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now().UTC()
	*t = next
	return nil
}

// Patch overwrites only the fields that are non-nil.
func (t *Task) Patch(assignee *uuid.UUID, description *string) error {
	next := *t
	if assignee != nil {
		next.AssigneeUUID = cloneUUID(assignee)
	}
	if description != nil {
		next.Description = *description
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now().UTC()
	*t = next
	return nil
}

// Equal reports whether both tasks share the same public identity.
func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.UUID == other.UUID
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
