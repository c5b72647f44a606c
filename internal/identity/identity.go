// Package identity verifies bearer tokens and resolves them to an external
// subject. Users are created on first use; no credentials are stored here.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthorized is returned for any token that does not verify.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the authenticated caller as asserted by the token issuer.
type Identity struct {
	SubjectID string
	Email     string
}

// Verifier resolves a bearer token to an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
