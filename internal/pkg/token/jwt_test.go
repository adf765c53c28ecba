package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	secret = []byte("test-secret")
	issued = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	week   = 7 * 24 * time.Hour
)

func TestIssueAndVerify(t *testing.T) {
	userID := uuid.New()

	tok, err := Issue(userID, secret, week, issued)
	require.NoError(t, err)

	got, err := Verify(tok, secret, issued.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyExpiry(t *testing.T) {
	tok, err := Issue(uuid.New(), secret, week, issued)
	require.NoError(t, err)

	_, err = Verify(tok, secret, issued.Add(week-time.Minute))
	assert.NoError(t, err)

	_, err = Verify(tok, secret, issued.Add(week+time.Second))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejects(t *testing.T) {
	good, err := Issue(uuid.New(), secret, week, issued)
	require.NoError(t, err)
	other, err := Issue(uuid.New(), secret, week, issued)
	require.NoError(t, err)
	g, o := strings.Split(good, "."), strings.Split(other, ".")
	tampered := g[0] + "." + o[1] + "." + g[2]

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: uuid.NewString()}).SignedString(secret)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour))},
		UserID:           "not-a-uuid",
	}).SignedString(secret)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour))},
		UserID:           uuid.NewString(),
	}).SignedString(secret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour))},
		UserID:           uuid.NewString(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"wrong secret", good, []byte("other-secret")},
		{"tampered", tampered, secret},
		{"malformed", "not.a.jwt", secret},
		{"empty", "", secret},
		{"no expiry", noExp, secret},
		{"bad user id", badSubject, secret},
		{"other algorithm", hs512, secret},
		{"alg none", unsigned, secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Verify(tt.token, tt.secret, issued)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Equal(t, uuid.Nil, id)
		})
	}
}

func TestMissingSecret(t *testing.T) {
	_, err := Issue(uuid.New(), nil, week, issued)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = Verify("x", nil, issued)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestManagerUsesClock(t *testing.T) {
	now := issued
	m := NewManager("test-secret", time.Hour).WithClock(func() time.Time { return now })
	userID := uuid.New()

	tok, err := m.Issue(userID)
	require.NoError(t, err)

	got, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	now = now.Add(2 * time.Hour)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
