package account

import "errors"

var (
	// ErrEmailTaken maps to 409.
	ErrEmailTaken = errors.New("email already in use")
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("account not found")
	// ErrUnauthorized is the single outcome for unknown email and wrong
	// password, so responses cannot be used to enumerate accounts.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrNotVerified rejects login while verification is outstanding. Same
	// status class as ErrUnauthorized, different message.
	ErrNotVerified = errors.New("email not verified")
)

// Reasons carried by BadRequestError.
const (
	ReasonMissingFields   = "missing-fields"
	ReasonExpired         = "expired"
	ReasonMismatch        = "mismatch"
	ReasonAlreadyVerified = "already-verified"
)

// BadRequestError covers verification-flow rejections the caller can act on.
type BadRequestError struct {
	Reason  string
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

func badRequest(reason, msg string) *BadRequestError {
	return &BadRequestError{Reason: reason, Message: msg}
}
