// Package token issues and verifies the stateless HS256 bearer tokens used
// for sessions. Verification is a pure function of the token and the signing
// key; rotating the key invalidates every outstanding token.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// DefaultTTL is used when the service is constructed with a non-positive TTL.
const DefaultTTL = 30 * time.Minute

// Service signs and verifies bearer tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token embedding subject and an absolute expiry of
// now + TTL.
func (s *Service) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify returns the subject embedded in a valid token. Signature mismatch,
// malformed structure, a foreign signing method, and past expiry all yield
// domain.ErrInvalidToken.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrInvalidToken
	}
	return sub, nil
}
