package events

import (
	"context"
	"log/slog"

	"github.com/dfnabiullin/task-service/internal/platform/logger"
)

// AuditLogHandler writes every task event to the structured log.
type AuditLogHandler struct {
	logger *slog.Logger
}

var _ EventHandler = (*AuditLogHandler)(nil)

// NewAuditLogHandler creates an AuditLogHandler. If logger is nil, a default logger will be used.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogHandler{logger: logger.With(slog.String("component", "audit"))}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("task_uuid", event.TaskUUID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.AssigneeUUID != nil {
		attrs = append(attrs, slog.String("assignee_uuid", event.AssigneeUUID.String()))
	}

	log.Info("task event", attrs...)
	return nil
}
