package service

import (
	"propdastak/internal/domain"
)

// TokenService issues and verifies the portal's bearer tokens.
type TokenService interface {
	// Generate returns a signed token for the user plus its lifetime in seconds
	Generate(user *domain.User) (string, int64, error)

	// Verify parses and validates a token, returning its claims
	Verify(token string) (*TokenClaims, error)
}
