// Package service contains the task use cases. It coordinates the task store,
// the user service client used to validate assignees and the event emitter
// that publishes committed changes.
//
// Services receive their dependencies through constructor injection and depend
// only on interfaces, so the delivery layer (internal/api) and the
// infrastructure (internal/platform) stay interchangeable.
//
// Expected failures are returned as sentinel errors or typed errors that
// callers inspect with errors.Is and errors.As; the API layer maps them to
// problem responses.
package service
