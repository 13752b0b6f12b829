package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)

	token, err := svc.GenerateToken("owner-a")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-a", claims.ParticipantID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-one", time.Minute).GenerateToken("owner-a")
	require.NoError(t, err)

	_, err = NewTokenService("secret-two", time.Minute).ValidateToken(token)
	require.Error(t, err)
}

func TestTokenRequiresParticipant(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute)

	_, err := svc.GenerateToken("  ")
	require.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	// Non-positive TTLs fall back to an hour, so the token is valid.
	token, err := svc.GenerateToken("owner-a")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	require.NoError(t, err)
}
