package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dfnabiullin/task-service/internal/api/openapi"
	"github.com/dfnabiullin/task-service/internal/config"
	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/dfnabiullin/task-service/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// defaultMigrationsDir is where `migrate create` writes new files, relative to
// the repository root.
const defaultMigrationsDir = "internal/platform/postgres/migrations"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "task-service",
		Short:         "Task management HTTP service",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default is ./config.yaml when present)")

	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newOpenAPICmd(),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// runServe loads configuration, prepares the database and serves until ctx is done.
func runServe(ctx context.Context, configPath string) error {
	cfg, log, err := loadConfigAndLogger(configPath)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.NewMigrator(db, log).Up(ctx); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	withMigrator := func(use, short string, fn func(*postgres.Migrator, context.Context) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrator(cmd.Context(), *configPath, fn)
			},
		}
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrator(cmd.Context(), *configPath, func(m *postgres.Migrator, ctx context.Context) error {
				v, err := m.Version(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			})
		},
	}

	var dir string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new SQL migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.CreateMigration(dir, args[0], slog.Default())
		},
	}
	create.Flags().StringVar(&dir, "dir", defaultMigrationsDir, "directory for the new migration file")

	cmd.AddCommand(
		withMigrator("up", "Apply all pending migrations", (*postgres.Migrator).Up),
		withMigrator("down", "Roll back the most recent migration", (*postgres.Migrator).Down),
		withMigrator("reset", "Roll back all migrations", (*postgres.Migrator).Reset),
		withMigrator("status", "Show the status of every migration", (*postgres.Migrator).Status),
		version,
		create,
	)
	return cmd
}

// runMigrator opens the configured database for the duration of fn.
func runMigrator(
	ctx context.Context,
	configPath string,
	fn func(*postgres.Migrator, context.Context) error,
) error {
	cfg, log, err := loadConfigAndLogger(configPath)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return fn(postgres.NewMigrator(db, log), ctx)
}

func newOpenAPICmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := openapi.NewHandler(openapi.NewDocument(), slog.Default())
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "json":
				var buf bytes.Buffer
				if err := json.Indent(&buf, h.JSON(), "", "  "); err != nil {
					return fmt.Errorf("failed to format openapi json: %w", err)
				}
				buf.WriteByte('\n')
				out = buf.Bytes()
			case "yaml":
				out = h.YAML()
			default:
				return fmt.Errorf("unsupported format %q: want json or yaml", format)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

// loadConfigAndLogger loads configuration and installs the process logger.
func loadConfigAndLogger(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate),
		slog.String("user_service_url", cfg.UserService.URL),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()))
	return cfg, log, nil
}
