package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, hasher.Verify("secret1", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}

func TestPasswordHasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	second, err := hasher.Hash("secret1")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("secret1", first))
	assert.True(t, hasher.Verify("secret1", second))
}

// A corrupt stored hash must read as a failed verification, never an error.
func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher()

	assert.False(t, hasher.Verify("secret1", ""))
	assert.False(t, hasher.Verify("secret1", "not-a-bcrypt-hash"))
}
