// Package logger provides structured JSON logging on top of log/slog.
//
// Setup configures the process-wide logger from config.ServerConfig. Request
// scoped loggers travel through context.Context via WithLogger, and callers
// retrieve them with FromContext or FromContextOrDefault so that every log line
// emitted while serving a request carries the same correlation attributes.
package logger
