// Package middleware provides HTTP middleware for authentication and request logging.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/career-guide/internal/identity"
	"github.com/jonathan/career-guide/internal/logger"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityKey is the context key for storing the authenticated identity.
const identityKey ContextKey = "identity"

// ErrNoIdentity is returned when a handler runs without AuthMiddleware.
var ErrNoIdentity = errors.New("identity not found in request context")

// AuthMiddleware verifies the bearer token and adds the identity to the request context.
func AuthMiddleware(verifier identity.Verifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug("token rejected", "path", r.URL.Path, "error", err.Error())
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// bearerToken parses "Bearer <token>", accepting any case for the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity extracts the authenticated identity from the request context.
func GetIdentity(r *http.Request) (identity.Identity, error) {
	id, ok := r.Context().Value(identityKey).(identity.Identity)
	if !ok || id.SubjectID == "" {
		return identity.Identity{}, ErrNoIdentity
	}
	return id, nil
}
