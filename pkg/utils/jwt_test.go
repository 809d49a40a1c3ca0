package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := GenerateToken(userID, "dana@example.com", "donor", "test-secret", 1)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, "donor", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(uuid.New(), "dana@example.com", "donor", "test-secret", 1)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(uuid.New(), "dana@example.com", "donor", "test-secret", -1)
	require.NoError(t, err)

	// Non-positive expiry falls back to the 24h default, so this stays valid.
	_, err = ValidateToken(token, "test-secret")
	assert.NoError(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
