package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/servicehub/account-service/internal/log"
)

// VerificationRequested is the event the notify worker consumes to send the
// actual email.
type VerificationRequested struct {
	Email      string `json:"email"`
	Code       string `json:"code"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Sink delivers a verification code to the user's email channel. Delivery is
// best-effort: callers log failures and never roll back account state.
type Sink interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	Close() error
}

// Noop logs instead of publishing. Default when no broker is configured.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) SendVerificationCode(ctx context.Context, email, code string) error {
	log.WithDD(ctx, log.L()).Debug("verification code (noop sink)",
		zap.String("email", email), zap.String("code", code))
	return nil
}

func (Noop) Close() error { return nil }
