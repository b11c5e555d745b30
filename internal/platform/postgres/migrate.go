package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrator applies the embedded schema migrations with goose.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMigrator creates a Migrator for db. If logger is nil, a default logger will be used.
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		db:     db,
		logger: logger.With(slog.String("component", "migrations")),
	}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run("up", func() error { return goose.UpContext(ctx, m.db, MigrationsDir) })
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run("down", func() error { return goose.DownContext(ctx, m.db, MigrationsDir) })
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) error {
	return m.run("reset", func() error { return goose.ResetContext(ctx, m.db, MigrationsDir) })
}

// Status logs the applied state of every migration.
func (m *Migrator) Status(ctx context.Context) error {
	return m.run("status", func() error { return goose.StatusContext(ctx, m.db, MigrationsDir) })
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.run("version", func() error {
		var err error
		version, err = goose.GetDBVersionContext(ctx, m.db)
		return err
	})
	return version, err
}

func (m *Migrator) run(command string, fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: m.logger})
	goose.SetBaseFS(migrations)
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	m.logger.Info("running migrations", slog.String("command", command))
	if err := fn(); err != nil {
		m.logger.Error("migration command failed",
			slog.String("command", command),
			slog.String("error", err.Error()))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	m.logger.Info("migrations finished", slog.String("command", command))
	return nil
}

// CreateMigration writes a new, sequentially numbered SQL migration into dir,
// which must be the on-disk migrations directory.
func CreateMigration(dir, name string, logger *slog.Logger) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("migration name is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: logger})
	goose.SetBaseFS(nil)
	goose.SetSequential(true)

	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger. It does not exit; goose returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
