package api

import (
	"net/http"

	"github.com/dfnabiullin/task-service/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TaskUUIDParam is the path parameter holding a task UUID.
const TaskUUIDParam = "uuid"

// getPathUUID parses the named chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, &BadRequestError{Detail: "Missing path parameter " + paramName}
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, &BadRequestError{Detail: "Invalid UUID: " + pathParam, Err: err}
	}
	return id, nil
}

// decodeAndValidate reads the JSON body into v and checks its validate tags.
// Decoding failures become BadRequestError; validation failures are returned
// as-is so MapErrorToProblem can list every field.
func decodeAndValidate(r *http.Request, v any) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return &BadRequestError{Detail: "Malformed request body", Err: err}
	}
	return shared.ValidateRequest(v)
}
