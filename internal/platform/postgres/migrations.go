package postgres

import (
	"embed"
	"io/fs"
)

// MigrationTableName is the table goose uses to track applied versions.
const MigrationTableName = "schema_migrations"

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the embedded migration files rooted at the repository
// path internal/platform/postgres.
func Migrations() fs.FS {
	return migrations
}
