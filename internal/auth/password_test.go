package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashIsSaltedAndVerifiable(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("password1")
	require.NoError(t, err)
	h2, err := h.Hash("password1")
	require.NoError(t, err)

	// одинаковый вход даёт разные хеши (случайная соль)
	assert.NotEqual(t, h1, h2)
	assert.True(t, strings.HasPrefix(h1, "$2a$04$"), "hash must embed algorithm and cost: %s", h1)

	assert.True(t, h.Verify("password1", h1))
	assert.True(t, h.Verify("password1", h2))
	assert.False(t, h.Verify("password2", h1))
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("password1", ""))
	assert.False(t, h.Verify("password1", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("password1", "$2a$04$short"))
}

func TestHasher_TooLongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(1).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
	assert.Equal(t, 5, NewHasher(5).cost)
}
