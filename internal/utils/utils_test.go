package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", 42, "editor", time.Hour)
	require.NoError(t, err)

	id, role, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "editor", role)
}

func TestParseToken_Rejects(t *testing.T) {
	token, err := GenerateToken("secret", 1, "admin", time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken("other", token)
	assert.Error(t, err)

	expired, err := GenerateToken("secret", 1, "admin", -time.Minute)
	require.NoError(t, err)
	_, _, err = ParseToken("secret", expired)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
