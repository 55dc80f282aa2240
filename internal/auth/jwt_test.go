package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestSecret(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, InitJWTSecret())
}

func TestInitJWTSecret_Missing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, InitJWTSecret())
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	initTestSecret(t)

	userID := uuid.New()
	signed, err := GenerateJWT(userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := VerifyJWT(signed)
	require.NoError(t, err)

	gotID, email, expiresAt, err := TokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice@example.com", email)
	assert.True(t, expiresAt.After(time.Now()), "expiry should be in the future")
}

func TestVerifyJWT_Tampered(t *testing.T) {
	initTestSecret(t)

	signed, err := GenerateJWT(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = VerifyJWT(signed + "x")
	assert.Error(t, err)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	initTestSecret(t)

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestRefreshJWT(t *testing.T) {
	initTestSecret(t)

	userID := uuid.New()
	signed, err := GenerateJWT(userID, "alice@example.com")
	require.NoError(t, err)

	refreshed, err := RefreshJWT(signed)
	require.NoError(t, err)

	token, err := VerifyJWT(refreshed)
	require.NoError(t, err)

	gotID, email, _, err := TokenClaims(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice@example.com", email)
}

func TestRefreshJWT_Invalid(t *testing.T) {
	initTestSecret(t)

	_, err := RefreshJWT("not-a-token")
	assert.Error(t, err)
}

func TestCurrentUser_Anonymous(t *testing.T) {
	_, ok := CurrentUser(context.Background())
	assert.False(t, ok)
}
