package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dfnabiullin/task-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenLifetime, svc.(*hmacJWTService).tokenLifetime)
}

func TestGenerateServiceToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newHMACJWTService(testSecret, 2*time.Minute, fixedClock(fixedTime))

	token, err := svc.GenerateServiceToken(context.Background(), "task-service")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "task-service", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, ServiceTokenType, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(2*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Minute

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				tok, err := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime)).
					GenerateServiceToken(context.Background(), "peer")
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime.Add(-time.Hour))).
					GenerateServiceToken(context.Background(), "peer")
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "token from the future",
			token: func(t *testing.T) string {
				tok, err := newHMACJWTService(testSecret, time.Hour, fixedClock(fixedTime.Add(10*time.Minute))).
					GenerateServiceToken(context.Background(), "peer")
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := newHMACJWTService("wrong-secret-that-is-long-enough-for-testing", lifetime, fixedClock(fixedTime)).
					GenerateServiceToken(context.Background(), "peer")
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				claims := jwtCustomClaims{
					TokenType: "access",
					RegisteredClaims: jwt.RegisteredClaims{
						Subject:   "peer",
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name:    "malformed token",
			token:   func(*testing.T) string { return "not.a.token" },
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   func(*testing.T) string { return "" },
			wantErr: ErrMissingToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))

			claims, err := svc.ValidateToken(context.Background(), tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "peer", claims.Subject)
		})
	}
}
