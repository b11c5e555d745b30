package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dfnabiullin/task-service/internal/api/shared"
	"github.com/dfnabiullin/task-service/internal/domain"
	"github.com/dfnabiullin/task-service/internal/service"
)

// Problem titles.
const (
	TitleTaskNotFound      = "Task Not Found"
	TitleUserNotValid      = "Assigned User Not Valid"
	TitleArgumentNotValid  = "Method Argument Not Valid"
	TitleBadRequest        = "Bad Request"
	TitleInternalError     = "Internal Server Error"
	internalErrorDetail    = "Internal server error"
	validationDetailJoiner = "; "
)

// BadRequestError marks a request the server could not parse, such as a
// malformed body or path UUID.
type BadRequestError struct {
	Detail string
	Err    error
}

func (e *BadRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad request: %s: %v", e.Detail, e.Err)
	}
	return "bad request: " + e.Detail
}

// Unwrap returns the parse failure.
func (e *BadRequestError) Unwrap() error {
	return e.Err
}

// MapErrorToProblem maps internal errors to problem details without leaking
// internal error text to clients.
func MapErrorToProblem(err error) shared.ProblemDetail {
	var (
		notFound   *service.TaskNotFoundError
		notValid   *service.UserNotValidError
		badRequest *BadRequestError
	)

	switch {
	case errors.As(err, &notFound):
		return shared.NewProblem(http.StatusNotFound, TitleTaskNotFound,
			fmt.Sprintf("Task not found with uuid %s", notFound.UUID))

	case errors.Is(err, service.ErrTaskNotFound):
		return shared.NewProblem(http.StatusNotFound, TitleTaskNotFound, "Task not found")

	case errors.As(err, &notValid):
		return shared.NewProblem(http.StatusBadRequest, TitleUserNotValid,
			fmt.Sprintf("User not found or not valid with uuid %s", notValid.UUID))

	case shared.ValidationMessages(err) != nil:
		return shared.NewProblem(http.StatusBadRequest, TitleArgumentNotValid,
			strings.Join(shared.ValidationMessages(err), validationDetailJoiner))

	case errors.Is(err, domain.ErrDescriptionTooLong):
		return shared.NewProblem(http.StatusBadRequest, TitleArgumentNotValid,
			fmt.Sprintf("Description must be at most %d characters", domain.MaxDescriptionLength))

	case errors.Is(err, domain.ErrValidation):
		return shared.NewProblem(http.StatusBadRequest, TitleArgumentNotValid, "Task is not valid")

	case errors.As(err, &badRequest):
		return shared.NewProblem(http.StatusBadRequest, TitleBadRequest, badRequest.Detail)

	default:
		return shared.NewProblem(http.StatusInternalServerError, TitleInternalError, internalErrorDetail)
	}
}

// HandleAPIError writes the problem for err and logs the error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithProblemAndLog(w, r, MapErrorToProblem(err), err)
}
