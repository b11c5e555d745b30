package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the task service.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// TaskEvent records a committed change to a task.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of TaskCreated, TaskUpdated or TaskDeleted
	Type string `json:"type"`

	TaskUUID     uuid.UUID  `json:"task_uuid"`
	AssigneeUUID *uuid.UUID `json:"assignee_uuid,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewTaskEvent creates a TaskEvent of the given type for a task.
func NewTaskEvent(eventType string, taskUUID uuid.UUID, assignee *uuid.UUID) *TaskEvent {
	var assigneeCopy *uuid.UUID
	if assignee != nil {
		id := *assignee
		assigneeCopy = &id
	}
	return &TaskEvent{
		ID:           uuid.New(),
		Type:         eventType,
		TaskUUID:     taskUUID,
		AssigneeUUID: assigneeCopy,
		OccurredAt:   time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
