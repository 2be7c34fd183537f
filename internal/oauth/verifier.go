package oauth

import (
	"context"
	"fmt"
)

// Providers accepted by the social-auth endpoints.
const (
	ProviderGoogle    = "google"
	ProviderFacebook  = "facebook"
	ProviderInstagram = "instagram"
)

func KnownProvider(p string) bool {
	switch p {
	case ProviderGoogle, ProviderFacebook, ProviderInstagram:
		return true
	}
	return false
}

// Claims is what a provider token attests to. Empty fields mean the verifier
// had nothing to say and the caller's values stand.
type Claims struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// Verifier checks a provider-issued token. The account state machine only
// depends on this interface, so the stub can be swapped for a real
// per-provider check without touching it.
type Verifier interface {
	VerifyProviderToken(ctx context.Context, provider, token string) (*Claims, error)
}

// AssertionVerifier accepts the client assertion as-is. This mirrors the
// behavior this service replaces; deploy a real verifier before exposing the
// social endpoints publicly.
type AssertionVerifier struct{}

func NewAssertionVerifier() AssertionVerifier { return AssertionVerifier{} }

func (AssertionVerifier) VerifyProviderToken(_ context.Context, provider, _ string) (*Claims, error) {
	if !KnownProvider(provider) {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	return &Claims{}, nil
}
