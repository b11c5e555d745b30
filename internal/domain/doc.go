// Package domain contains the core business entities and domain logic of the
// task service. It is independent of storage, transport and configuration.
package domain
