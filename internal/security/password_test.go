package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/account-service/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := security.HashPassword("StrongP@ss1")
	require.NoError(t, err)
	assert.NotEqual(t, "StrongP@ss1", h)

	assert.True(t, security.CheckPassword(h, "StrongP@ss1"))
	assert.False(t, security.CheckPassword(h, "wrong"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := security.HashPassword("same")
	require.NoError(t, err)
	h2, err := security.HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestRandomPasswordHashIsUnusable(t *testing.T) {
	pw, err := security.RandomPassword()
	require.NoError(t, err)
	assert.NotEmpty(t, pw)

	h, err := security.HashPassword(pw)
	require.NoError(t, err)
	// nobody knows the plaintext, so only the original value verifies
	assert.True(t, security.CheckPassword(h, pw))
	assert.False(t, security.CheckPassword(h, ""))
}
