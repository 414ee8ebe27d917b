package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdastak/internal/domain"
	"propdastak/internal/service"
	"propdastak/pkg/logger"
)

func newAuthMiddleware(t *testing.T) (func(http.Handler) http.Handler, string) {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	tokens := service.NewTokenService("test-secret")
	token, _, err := tokens.Generate(&domain.User{
		ID:       7,
		UserUUID: "3f1f9a0e-64cd-4c9e-9a35-111111111111",
		Email:    "asha@example.com",
		Class:    domain.UserClassBuyer,
	})
	require.NoError(t, err)

	return Auth(tokens, log), token
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	auth, token := newAuthMiddleware(t)

	var gotUUID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotUUID = claims.UserUUID
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3f1f9a0e-64cd-4c9e-9a35-111111111111", gotUUID)
}

func TestAuth_RejectsBadRequests(t *testing.T) {
	auth, _ := newAuthMiddleware(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestAuth_RejectsWrongSecret(t *testing.T) {
	auth, _ := newAuthMiddleware(t)

	other, _, err := service.NewTokenService("other-secret").Generate(&domain.User{ID: 1, UserUUID: "u"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rec := httptest.NewRecorder()

	auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
