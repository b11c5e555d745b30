// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml file. It provides
// type-safe access to settings needed by the server, the database layer and
// the user service client while keeping configuration details separate from
// business logic.
package config
