// Package token issues and verifies the compact signed credentials
// (HS256 JWTs) that prove an account's identity claims until expiry.
// Operations are pure: the service holds only the signing secret and
// the credential lifetime, both fixed at construction.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meetgrid/server/internal/model"
)

var (
	// ErrMalformed is returned when a credential does not parse as a
	// three-segment JWT.
	ErrMalformed = errors.New("malformed credential")

	// ErrBadSignature is returned when the signature does not match
	// the header and payload.
	ErrBadSignature = errors.New("credential signature mismatch")

	// ErrExpired is returned when a correctly signed credential is
	// past its expiry.
	ErrExpired = errors.New("credential expired")
)

// Claims are the identity attributes embedded in a credential.
// Immutable once issued; there is no revocation, so a credential stays
// valid until exp regardless of server-side state changes.
type Claims struct {
	UserID int64      `json:"userId"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies credentials with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New constructs a Service. The secret must be non-empty and the ttl
// positive; both come from configuration, never from request data.
func New(secret []byte, ttl time.Duration) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Service{secret: secret, ttl: ttl}, nil
}

// Issue creates a signed credential for the given identity. The payload
// carries userId, email, role, iat and exp as Unix seconds.
func (s *Service) Issue(userID int64, email string, role model.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return signed, nil
}

// Verify checks a credential's signature and expiry and returns its
// claims. The signature is checked before expiry, with a constant-time
// comparison, so a tampered credential always reports ErrBadSignature.
func (s *Service) Verify(credential string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if !claims.Role.Valid() {
		return nil, ErrMalformed
	}
	return claims, nil
}
