package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dfnabiullin/task-service/internal/api"
	apiMiddleware "github.com/dfnabiullin/task-service/internal/api/middleware"
	"github.com/dfnabiullin/task-service/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates the router with middleware, the task API, the
// documentation endpoints and the health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	r.NotFound(notFoundProblem)
	r.MethodNotAllowed(methodNotAllowedProblem)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}
		r.Route("/tasks", taskHandler.Routes)
	})

	if app.docs != nil {
		app.docs.Routes(r)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}

func notFoundProblem(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithProblem(w, r, shared.NewProblem(http.StatusNotFound, "Not Found",
		fmt.Sprintf("No resource found for %s %s", r.Method, r.URL.Path)))
}

func methodNotAllowedProblem(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithProblem(w, r, shared.NewProblem(http.StatusMethodNotAllowed, "Method Not Allowed",
		fmt.Sprintf("Method '%s' is not supported.", r.Method)))
}
