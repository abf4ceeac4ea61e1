package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetgrid/server/internal/model"
	"github.com/meetgrid/server/internal/token"
)

func newGuard(t *testing.T) (*Guard, *token.Service) {
	t.Helper()
	tokens, err := token.New([]byte("guard-test-secret"), time.Hour)
	require.NoError(t, err)
	return NewGuard(tokens), tokens
}

func request(t *testing.T, authorization string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	return r
}

func TestAuthenticate(t *testing.T) {
	guard, tokens := newGuard(t)

	credential, err := tokens.Issue(42, "alice@example.com", model.RoleUser)
	require.NoError(t, err)

	claims, err := guard.Authenticate(request(t, "Bearer "+credential))
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestAuthenticateSchemeCaseInsensitive(t *testing.T) {
	guard, tokens := newGuard(t)

	credential, err := tokens.Issue(42, "alice@example.com", model.RoleUser)
	require.NoError(t, err)

	for _, scheme := range []string{"bearer", "BEARER", "BeArEr"} {
		_, err := guard.Authenticate(request(t, scheme+" "+credential))
		assert.NoError(t, err, "scheme %q", scheme)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	guard, _ := newGuard(t)

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare scheme", "Bearer "},
		{"garbage token", "Bearer not.a.credential"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := guard.Authenticate(request(t, tt.authorization))
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestAuthenticateForeignSignature(t *testing.T) {
	guard, _ := newGuard(t)

	other, err := token.New([]byte("some-other-secret"), time.Hour)
	require.NoError(t, err)
	credential, err := other.Issue(42, "alice@example.com", model.RoleAdmin)
	require.NoError(t, err)

	_, err = guard.Authenticate(request(t, "Bearer "+credential))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRequireAdmin(t *testing.T) {
	guard, tokens := newGuard(t)

	adminCred, err := tokens.Issue(1, "admin@example.com", model.RoleAdmin)
	require.NoError(t, err)
	userCred, err := tokens.Issue(2, "user@example.com", model.RoleUser)
	require.NoError(t, err)

	claims, err := guard.RequireAdmin(request(t, "Bearer "+adminCred))
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)

	_, err = guard.RequireAdmin(request(t, "Bearer "+userCred))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = guard.RequireAdmin(request(t, ""))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCanModify(t *testing.T) {
	owner := &token.Claims{UserID: 10, Role: model.RoleUser}
	admin := &token.Claims{UserID: 99, Role: model.RoleAdmin}
	stranger := &token.Claims{UserID: 11, Role: model.RoleUser}

	assert.True(t, CanModify(owner, 10))
	assert.True(t, CanModify(admin, 10))
	assert.False(t, CanModify(stranger, 10))
	assert.False(t, CanModify(nil, 10))
}

func TestRequireAuthMiddleware(t *testing.T) {
	guard, tokens := newGuard(t)

	var seen *token.Claims
	handler := guard.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request(t, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	credential, err := tokens.Issue(42, "alice@example.com", model.RoleUser)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, request(t, "Bearer "+credential))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(42), seen.UserID)
}
