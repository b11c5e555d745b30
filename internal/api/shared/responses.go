package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/dfnabiullin/task-service/internal/redact"
)

// ProblemContentType is the media type of RFC 7807 error bodies.
const ProblemContentType = "application/problem+json"

// DefaultProblemType is used when a problem has no more specific type URI.
const DefaultProblemType = "about:blank"

// ProblemDetail is an RFC 7807 error response.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	TraceID  string `json:"traceId,omitempty"`
}

// NewProblem builds a ProblemDetail with the default type.
func NewProblem(status int, title, detail string) ProblemDetail {
	return ProblemDetail{
		Type:   DefaultProblemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel logs a 4xx problem at WARN instead of DEBUG.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, "application/json", status, data)
}

// RespondWithProblem writes problem as application/problem+json. Instance and
// TraceID are filled from the request when empty.
func RespondWithProblem(w http.ResponseWriter, r *http.Request, problem ProblemDetail) {
	if problem.Type == "" {
		problem.Type = DefaultProblemType
	}
	if problem.Instance == "" {
		problem.Instance = r.URL.Path
	}
	if problem.TraceID == "" {
		problem.TraceID = GetTraceID(r.Context())
	}
	writeJSON(w, r, ProblemContentType, problem.Status, problem)
}

// RespondWithProblemAndLog writes problem and logs err, redacted, next to it.
// The raw error never reaches the client.
//
// Log level strategy:
// - 5xx: ERROR
// - 429: WARN
// - other 4xx: DEBUG, or WARN with WithElevatedLogLevel
func RespondWithProblemAndLog(
	w http.ResponseWriter,
	r *http.Request,
	problem ProblemDetail,
	err error,
	opts ...ResponseOption,
) {
	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", problem.Status),
		slog.String("title", problem.Title),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case problem.Status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case problem.Status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && problem.Status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithProblem(w, r, problem)
}

func writeJSON(w http.ResponseWriter, r *http.Request, contentType string, status int, data any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}
