package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/career-guide/internal/config"
)

// Claims carries the subject in the registered "sub" claim plus the email.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies and issues HS256 tokens.
type JWTVerifier struct {
	config *config.JWTConfig
	now    func() time.Time
}

// NewJWTVerifier creates a verifier for the given configuration.
func NewJWTVerifier(cfg *config.JWTConfig) *JWTVerifier {
	return &JWTVerifier{config: cfg, now: time.Now}
}

// Issue signs a token for the subject. Used for development and tests.
func (v *JWTVerifier) Issue(subject, email string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("subject is required")
	}
	now := v.now()
	expiresAt := now.Add(time.Duration(v.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(v.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the token signature, expiry and issuer and returns the
// identity it asserts. Every failure wraps ErrUnauthorized.
func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("%w: token string is empty", ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.config.Secret), nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, fmt.Errorf("%w: token expired", ErrUnauthorized)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, fmt.Errorf("%w: invalid token signature", ErrUnauthorized)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Identity{}, fmt.Errorf("%w: malformed token", ErrUnauthorized)
		default:
			return Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: token is not valid", ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	return Identity{SubjectID: claims.Subject, Email: claims.Email}, nil
}
