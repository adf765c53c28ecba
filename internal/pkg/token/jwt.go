// Package token issues and verifies the signed bearer tokens handed out at
// login. Verification is a pure function of the token, the secret and the
// current time; nothing is stored server side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("token: signing secret is empty")
	ErrInvalidToken  = errors.New("token: invalid or expired")
)

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Issue signs an HS256 token for userID that expires ttl after now.
func Issue(userID uuid.UUID, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID.String(),
	})

	signed, err := t.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id carried by tokenString. Every failure (bad
// signature, foreign algorithm, malformed payload, missing or past expiry)
// wraps ErrInvalidToken.
func Verify(tokenString string, secret []byte, now time.Time) (uuid.UUID, error) {
	if len(secret) == 0 {
		return uuid.Nil, ErrMissingSecret
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad user_id claim", ErrInvalidToken)
	}
	return userID, nil
}

// Manager binds the secret, lifetime and clock so services and middleware do
// not carry them around.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Issue(userID uuid.UUID) (string, error) {
	return Issue(userID, m.secret, m.ttl, m.now())
}

func (m *Manager) Verify(tokenString string) (uuid.UUID, error) {
	return Verify(tokenString, m.secret, m.now())
}
