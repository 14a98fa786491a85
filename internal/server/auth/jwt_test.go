package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/researchhub/backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", testKey, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", testKey, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken("alice", "alice@example.com", testKey, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-key"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("definitely.not.a.jwt", testKey)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
