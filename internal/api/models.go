package api

import (
	"time"

	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/dfnabiullin/task-service/internal/service"
	"github.com/google/uuid"
)

// TaskRequest is the body of POST and PUT /api/v1/tasks.
type TaskRequest struct {
	AssigneeUUID *uuid.UUID `json:"assigneeUuid"`
	Description  string     `json:"description"  validate:"required,notblank,max=1000"`
}

// TaskPatchRequest is the body of PATCH /api/v1/tasks/{uuid}. Absent or null
// fields are left unchanged.
type TaskPatchRequest struct {
	AssigneeUUID *uuid.UUID `json:"assigneeUuid"`
	Description  *string    `json:"description"  validate:"omitempty,max=1000"`
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	UUID         uuid.UUID  `json:"uuid"`
	AssigneeUUID *uuid.UUID `json:"assigneeUuid"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (r TaskRequest) toInput() service.TaskInput {
	return service.TaskInput{AssigneeUUID: r.AssigneeUUID, Description: r.Description}
}

func (r TaskPatchRequest) toPatch() service.TaskPatch {
	return service.TaskPatch{AssigneeUUID: r.AssigneeUUID, Description: r.Description}
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		UUID:         task.UUID,
		AssigneeUUID: task.AssigneeUUID,
		Description:  task.Description,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
