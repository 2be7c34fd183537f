package security_test

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/servicehub/account-service/internal/security"
)

func TestNewVerificationCode(t *testing.T) {
	pat := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 1000; i++ {
		code := security.NewVerificationCode()
		require.Regexp(t, pat, code)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
