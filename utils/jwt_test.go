package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tok, claims, err := GenerateToken(7, "CASHIER", "s3cret", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "CASHIER", got.Role)
	assert.Equal(t, claims.ID, got.ID)

	_, other, err := GenerateToken(7, "CASHIER", "s3cret", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, other.ID)
}

func TestParseTokenRejects(t *testing.T) {
	tok, _, err := GenerateToken(7, "ADMIN", "s3cret", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(tok, "other-secret")
	assert.Error(t, err)

	expired, _, err := GenerateToken(7, "ADMIN", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "s3cret")
	assert.Error(t, err)

	noUser, _, err := GenerateToken(0, "ADMIN", "s3cret", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(noUser, "s3cret")
	assert.Error(t, err)

	_, err = ParseToken("garbage", "s3cret")
	assert.Error(t, err)
}
