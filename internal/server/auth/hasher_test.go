package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Hash of "demo123" at cost 10, taken from the seed record.
const demoHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost) // low cost keeps the test fast

	hash, err := h.Hash("s3cret-password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	ok, err := h.Verify("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_VerifyKnownHash(t *testing.T) {
	h := NewBcryptHasher(10)

	ok, err := h.Verify("demo123", demoHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(10)

	// A corrupt stored hash must look exactly like a wrong password.
	ok, err := h.Verify("demo123", "not-a-bcrypt-hash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBcryptHasher_CostClamped(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below range", 0, bcrypt.DefaultCost},
		{"above range", 99, bcrypt.DefaultCost},
		{"in range", 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).cost)
		})
	}
}
