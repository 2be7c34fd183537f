package http_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servicehub/account-service/internal/account"
	api "github.com/servicehub/account-service/internal/http"
	"github.com/servicehub/account-service/internal/notify"
	"github.com/servicehub/account-service/internal/oauth"
	"github.com/servicehub/account-service/internal/repo"
	"github.com/servicehub/account-service/internal/security"
)

type testEnv struct {
	T      *testing.T
	Store  *repo.Memory
	Router *gin.Engine
}

func newTestEnv(t *testing.T, verificationRequired bool) *testEnv {
	t.Helper()

	mem := repo.NewMemory()
	issuer := security.NewTokenIssuer("test-secret", time.Hour)
	svc := account.NewService(mem, notify.NewNoop(), oauth.NewAssertionVerifier(), issuer, account.Config{
		VerificationRequired: verificationRequired,
		CodeTTL:              600 * time.Second,
	})

	// no payments client: the create-intent handler would call the real
	// processor, so it stays out of these tests
	h := api.NewHandler(svc, nil, issuer, nil, mem)

	gin.SetMode(gin.TestMode)
	return &testEnv{T: t, Store: mem, Router: api.NewRouter(h)}
}

func basicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

// storedCode fetches the pending verification code straight from the store,
// standing in for reading the email.
func (e *testEnv) storedCode(email string) string {
	e.T.Helper()
	a, err := e.Store.FindByEmail(context.Background(), email)
	if err != nil || a == nil {
		e.T.Fatalf("account %s not found: %v", email, err)
	}
	return a.VerificationCode
}
