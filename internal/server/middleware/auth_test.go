package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-guide/internal/identity"
	"github.com/jonathan/career-guide/internal/logger"
)

type mapVerifier map[string]identity.Identity

func (v mapVerifier) Verify(_ context.Context, token string) (identity.Identity, error) {
	id, ok := v[token]
	if !ok {
		return identity.Identity{}, identity.ErrUnauthorized
	}
	return id, nil
}

func protected(t *testing.T, seen *identity.Identity) http.Handler {
	verifier := mapVerifier{"valid-token": {SubjectID: "sub-1", Email: "a@example.com"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetIdentity(r)
		require.NoError(t, err)
		*seen = id
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(verifier, logger.NewNop())(next)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	var seen identity.Identity
	h := protected(t, &seen)

	for _, header := range []string{"Bearer valid-token", "bearer valid-token", "BEARER  valid-token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, "sub-1", seen.SubjectID)
		assert.Equal(t, "a@example.com", seen.Email)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	var seen identity.Identity
	h := protected(t, &seen)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no scheme", header: "valid-token"},
		{name: "basic scheme", header: "Basic valid-token"},
		{name: "extra parts", header: "Bearer valid-token extra"},
		{name: "unknown token", header: "Bearer other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
	assert.Empty(t, seen.SubjectID)
}

func TestGetIdentity_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetIdentity(req)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestGetIdentity_FromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), identity.Identity{SubjectID: "s"}))
	id, err := GetIdentity(req)
	require.NoError(t, err)
	assert.Equal(t, "s", id.SubjectID)
}
