package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, time.Hour, "session-1")
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), time.Hour, "session-1")
	require.NoError(t, err)

	_, err = ParseToken([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, -time.Minute, "session-1")
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}
