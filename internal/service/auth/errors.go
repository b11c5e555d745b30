package auth

import "errors"

// Service token errors. The auth middleware maps all of them to 401.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures and unexpected algorithms.
	ErrInvalidToken = errors.New("invalid service token")

	// ErrExpiredToken means the exp claim has passed, allowing for clock skew.
	ErrExpiredToken = errors.New("service token has expired")

	// ErrTokenNotYetValid means the nbf claim lies in the future.
	ErrTokenNotYetValid = errors.New("service token not yet valid")

	// ErrMissingToken means no token was presented.
	ErrMissingToken = errors.New("service token is missing")

	// ErrWrongTokenType means the token's type claim is not "service".
	ErrWrongTokenType = errors.New("token is not a service token")
)
