package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashNeverEqualsPlaintext(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", hash)
	assert.NotContains(t, hash, "pw1")
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	ok, err := h.Verify(hash, "correct horse")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(hash, "battery staple")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCorruptHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	ok, err := h.Verify("not-a-bcrypt-hash", "pw")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCostFallback(t *testing.T) {
	h := NewBcryptHasher(0)
	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestPasswordLengthLimit(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("p", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := h.Hash(strings.Repeat("p", MaxPasswordBytes))
	require.NoError(t, err)

	ok, err := h.Verify(hash, strings.Repeat("p", 80))
	assert.NoError(t, err)
	assert.False(t, ok)
}
