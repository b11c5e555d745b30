package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"       validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"     validate:"required"`
	UserService UserServiceConfig `mapstructure:"user_service" validate:"required"`
	Auth        AuthConfig        `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// UserServiceConfig points at the user service used to validate task assignees.
type UserServiceConfig struct {
	URL     string        `mapstructure:"url"     validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0"`
}

// AuthConfig contains service-to-service authentication settings.
// An empty JWTSecret disables authentication.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"     validate:"omitempty,min=32"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"gte=0"`
}

// Enabled reports whether bearer token authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}
