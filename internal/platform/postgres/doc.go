// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. Queries are built
// with squirrel and executed through database/sql on the pgx driver; the
// versioned schema lives in the embedded migrations directory and is applied
// with goose.
package postgres
