package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[otp] = true
	}

	// 50 draws from a million values collide essentially never.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateRandomToken(t *testing.T) {
	t.Parallel()

	token, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	// Non-positive lengths fall back to the default.
	fallback, err := GenerateRandomToken(0)
	require.NoError(t, err)
	assert.Len(t, fallback, 64)
}
