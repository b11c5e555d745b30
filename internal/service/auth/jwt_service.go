package auth

import (
	"context"
	"time"
)

// ServiceTokenType marks tokens minted for service-to-service calls.
const ServiceTokenType = "service"

// Issuer is written into every token minted by this service.
const Issuer = "task-service"

// JWTService signs and verifies the bearer tokens exchanged between services.
type JWTService interface {
	// GenerateServiceToken creates a short-lived signed token identifying subject.
	GenerateServiceToken(ctx context.Context, subject string) (string, error)

	// ValidateToken verifies the signature, lifetime and type of tokenString
	// and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a service token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	TokenType string    `json:"type,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
