package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/account-service/internal/security"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	iss := security.NewTokenIssuer("secret", time.Minute)

	tok, err := iss.Issue("u1", "u@example.com", "CUSTOMER")
	require.NoError(t, err)

	c, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "u@example.com", c.Email)
	assert.Equal(t, "CUSTOMER", c.Role)
	assert.Equal(t, "u1", c.Subject)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := security.NewTokenIssuer("secret-a", time.Minute).Issue("u1", "u@example.com", "")
	require.NoError(t, err)

	_, err = security.NewTokenIssuer("secret-b", time.Minute).Parse(tok)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	iss := security.NewTokenIssuer("secret", -time.Minute)
	tok, err := iss.Issue("u1", "u@example.com", "")
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	assert.Error(t, err)
}
