package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/dfnabiullin/task-service/internal/api/openapi"
	"github.com/dfnabiullin/task-service/internal/config"
	"github.com/dfnabiullin/task-service/internal/events"
	"github.com/dfnabiullin/task-service/internal/platform/postgres"
	"github.com/dfnabiullin/task-service/internal/platform/userservice"
	"github.com/dfnabiullin/task-service/internal/service"
	"github.com/dfnabiullin/task-service/internal/service/auth"
	"github.com/dfnabiullin/task-service/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// jwtService is nil when authentication is disabled.
	jwtService  auth.JWTService
	taskService service.TaskService
	emitter     *events.InMemoryEventEmitter
	docs        *openapi.Handler
}

// newApplication wires stores, clients and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// The user client signs outbound calls only when a token source exists.
	var tokens userservice.TokenGenerator
	if cfg.Auth.Enabled() {
		jwtService, err := auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		app.jwtService = jwtService
		tokens = jwtService
		logger.Info("service token authentication enabled",
			slog.Duration("token_lifetime", cfg.Auth.TokenLifetime))
	} else {
		logger.Warn("service token authentication disabled: auth.jwt_secret is empty")
	}

	users := userservice.NewClient(cfg.UserService, tokens, logger)

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(events.NewAuditLogHandler(logger))

	taskService, err := service.NewTaskService(
		postgres.NewPostgresTaskStore(db, logger),
		store.NewDBTransactor(db),
		users,
		app.emitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	app.docs, err = openapi.NewHandler(openapi.NewDocument(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build api documentation: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run listens on the configured port and serves until ctx is done.
func (app *application) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", strconv.Itoa(app.config.Server.Port))

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return serveHTTP(ctx, ln, app.setupRouter(), app.config.Server.ShutdownTimeout, app.logger)
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
