package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dfnabiullin/task-service/internal/api/shared"
	"github.com/dfnabiullin/task-service/internal/service/auth"
)

// AuthMiddleware requires a valid service bearer token on every request.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the bearer token in the Authorization header and
// stores its subject in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, r, "Authorization header required", auth.ErrMissingToken)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			unauthorized(w, r, "Invalid authorization format", auth.ErrInvalidToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				unauthorized(w, r, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrMissingToken):
				unauthorized(w, r, "Invalid token", err)
			default:
				shared.RespondWithProblemAndLog(w, r,
					shared.NewProblem(http.StatusInternalServerError, "Internal Server Error", "Internal server error"),
					err)
			}
			return
		}

		ctx := shared.WithServiceSubject(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="task-service"`)
	shared.RespondWithProblemAndLog(w, r,
		shared.NewProblem(http.StatusUnauthorized, "Unauthorized", detail),
		err,
		shared.WithElevatedLogLevel())
}
