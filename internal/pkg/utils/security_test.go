package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPasswordHash("s3cret-password", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestVerificationJWTRoundTrip(t *testing.T) {
	secret := "jwt-test-secret"

	t.Run("valid token returns the user id", func(t *testing.T) {
		token, err := GenerateVerificationJWT("user-123", secret, 1)
		require.NoError(t, err)

		userID, err := ParseVerificationJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := GenerateVerificationJWT("user-123", "another-secret", 1)
		require.NoError(t, err)

		_, err = ParseVerificationJWT(token, secret)
		require.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateVerificationJWT("user-123", secret, -1)
		require.NoError(t, err)

		_, err = ParseVerificationJWT(token, secret)
		require.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := ParseVerificationJWT("not.a.jwt", secret)
		require.Error(t, err)
	})
}
