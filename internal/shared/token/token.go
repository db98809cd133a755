// Package token issues and validates the signed session tokens returned by
// login. Tokens are stateless bearer credentials: the server never stores
// them, it only verifies the signature and the expiry window. There is no
// revocation path; logout is client-side token disposal.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aicraft/storycraft/internal/shared/config"
)

// TTL bounds the lifetime of every issued token.
const TTL = time.Hour

var (
	ErrExpired      = errors.New("token expired")
	ErrBadSignature = errors.New("token signature invalid")
	ErrMalformed    = errors.New("token malformed")
)

type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret: []byte(cfg.TokenSecret),
		now:    time.Now,
	}
}

// Issue signs a session token for the given subject, valid for TTL.
func (m *Manager) Issue(subjectID string) (string, error) {
	return m.issue(subjectID, TTL)
}

func (m *Manager) issue(subjectID string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate checks signature and expiry and returns the subject ID. Failures
// map to one of ErrExpired, ErrBadSignature or ErrMalformed.
func (m *Manager) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	switch {
	case err == nil && tok.Valid:
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return "", ErrBadSignature
	default:
		return "", ErrMalformed
	}
}
