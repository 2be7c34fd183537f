package security

import (
	"math/rand/v2"
	"strconv"
)

// NewVerificationCode returns a 6-digit code in 100000..999999, uniform over
// the 900000 values. Codes are short-lived and compared against the stored
// value, so math/rand is sufficient here.
func NewVerificationCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}
