package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"propdastak/internal/domain"
)

// tokenTTL is how long issued bearer tokens stay valid.
const tokenTTL = 24 * time.Hour

// TokenClaims are the claims carried by a portal bearer token.
type TokenClaims struct {
	UserUUID string `json:"user_uuid"`
	Email    string `json:"email,omitempty"`
	Class    string `json:"class,omitempty"`
	jwt.RegisteredClaims
}

// tokenService signs and verifies HS256 tokens
type tokenService struct {
	secret []byte
}

// NewTokenService creates a new token service with the given signing secret.
func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

// Generate returns a signed token for the user and its lifetime in seconds.
func (s *tokenService) Generate(user *domain.User) (string, int64, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserUUID: user.UserUUID,
		Email:    user.Email,
		Class:    string(user.Class),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(tokenTTL.Seconds()), nil
}

// Verify parses and validates a token, returning its claims.
func (s *tokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// UserID returns the numeric user ID carried in the subject claim.
func (c *TokenClaims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
