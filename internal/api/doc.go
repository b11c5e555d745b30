// Package api exposes the task service over HTTP. It decodes and validates
// JSON requests, calls the service layer and renders results as JSON or, for
// failures, as RFC 7807 problem details.
package api
