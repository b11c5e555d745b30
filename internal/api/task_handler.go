package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dfnabiullin/task-service/internal/api/shared"
	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/dfnabiullin/task-service/internal/service"
	"github.com/go-chi/chi/v5"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Routes mounts the task endpoints on r.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateTask)
	r.Get("/", h.ListTasks)
	r.Get("/{uuid}", h.GetTask)
	r.Put("/{uuid}", h.ReplaceTask)
	r.Patch("/{uuid}", h.PatchTask)
	r.Delete("/{uuid}", h.DeleteTask)
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+task.UUID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/v1/tasks/{uuid}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, TaskUUIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ListTasks handles GET /api/v1/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("listed tasks", slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ReplaceTask handles PUT /api/v1/tasks/{uuid}
func (h *TaskHandler) ReplaceTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, TaskUUIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req TaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.ReplaceTask(r.Context(), id, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// PatchTask handles PATCH /api/v1/tasks/{uuid}
func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, TaskUUIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req TaskPatchRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.PatchTask(r.Context(), id, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/v1/tasks/{uuid}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, TaskUUIDParam)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
