// Package openapi builds the OpenAPI 3 description of the task API and serves
// it as JSON, YAML and a Swagger UI page.
package openapi
