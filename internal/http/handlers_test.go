package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func do(t *testing.T, env *testEnv, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	env.Router.ServeHTTP(w, req)
	return w
}

func Test_Register_Verify_Login_Flow(t *testing.T) {
	env := newTestEnv(t, true)

	// register: lands in the pending state
	w := do(t, env, "POST", "/api/auth/register",
		`{"email":"a@x.com","password":"StrongP@ss1","name":"A","role":"CUSTOMER"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register code=%d body=%s", w.Code, w.Body.String())
	}
	var reg struct {
		UserID               string `json:"userId"`
		Email                string `json:"email"`
		RequiresVerification bool   `json:"requiresVerification"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("register resp: %v", err)
	}
	if !reg.RequiresVerification || reg.UserID == "" || reg.Email != "a@x.com" {
		t.Fatalf("register resp: %+v", reg)
	}

	// login before verification: 401, verification message
	w = do(t, env, "POST", "/api/auth/login",
		`{"email":"a@x.com","password":"StrongP@ss1"}`, nil)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "verify") {
		t.Fatalf("unverified login code=%d body=%s", w.Code, w.Body.String())
	}

	// wrong code
	w = do(t, env, "POST", "/api/auth/verify-email",
		`{"email":"a@x.com","verificationCode":"000000"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad code: %d %s", w.Code, w.Body.String())
	}

	// correct code
	code := env.storedCode("a@x.com")
	w = do(t, env, "POST", "/api/auth/verify-email",
		`{"email":"a@x.com","verificationCode":"`+code+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", w.Code, w.Body.String())
	}

	// login now succeeds with a token
	w = do(t, env, "POST", "/api/auth/login",
		`{"email":"a@x.com","password":"StrongP@ss1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var lr struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lr); err != nil || lr.Token == "" {
		t.Fatalf("login resp: %v body=%s", err, w.Body.String())
	}
	if lr.Role != "CUSTOMER" {
		t.Fatalf("role: %s", lr.Role)
	}

	// bearer token reaches the profile
	w = do(t, env, "GET", "/api/profile", "", map[string]string{"Authorization": "Bearer " + lr.Token})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "a@x.com") {
		t.Fatalf("profile: %d %s", w.Code, w.Body.String())
	}
	// the password hash never leaves the service
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("profile leaks credentials: %s", w.Body.String())
	}

	if len(env.Store.Logins) != 1 {
		t.Fatalf("expected one login record, got %d", len(env.Store.Logins))
	}
}

func Test_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, false)

	body := `{"email":"dup@x.com","password":"StrongP@ss1","name":"D","role":"CUSTOMER"}`
	if w := do(t, env, "POST", "/api/auth/register", body, nil); w.Code != http.StatusCreated {
		t.Fatalf("first register: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, env, "POST", "/api/auth/register", body, nil); w.Code != http.StatusConflict {
		t.Fatalf("dup register: %d %s", w.Code, w.Body.String())
	}
}

func Test_Register_ValidationAggregated(t *testing.T) {
	env := newTestEnv(t, false)

	w := do(t, env, "POST", "/api/auth/register",
		`{"email":"not-an-email","password":"short","role":"WIZARD"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	// one message carrying every field violation
	body := w.Body.String()
	for _, frag := range []string{"email", "password", "role"} {
		if !strings.Contains(body, frag) {
			t.Fatalf("missing %q in %s", frag, body)
		}
	}
}

func Test_Login_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	env := newTestEnv(t, false)
	do(t, env, "POST", "/api/auth/register",
		`{"email":"u@x.com","password":"StrongP@ss1","role":"CUSTOMER"}`, nil)

	w1 := do(t, env, "POST", "/api/auth/login", `{"email":"ghost@x.com","password":"StrongP@ss1"}`, nil)
	w2 := do(t, env, "POST", "/api/auth/login", `{"email":"u@x.com","password":"wrong-password"}`, nil)
	if w1.Code != http.StatusUnauthorized || w2.Code != http.StatusUnauthorized {
		t.Fatalf("codes: %d %d", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Fatalf("enumeration leak: %q vs %q", w1.Body.String(), w2.Body.String())
	}
}

func Test_ResendVerification(t *testing.T) {
	env := newTestEnv(t, true)
	do(t, env, "POST", "/api/auth/register",
		`{"email":"r@x.com","password":"StrongP@ss1","role":"CUSTOMER"}`, nil)

	if w := do(t, env, "POST", "/api/auth/resend-verification", `{"email":"ghost@x.com"}`, nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown email: %d", w.Code)
	}
	if w := do(t, env, "POST", "/api/auth/resend-verification", `{"email":"r@x.com"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("resend: %d %s", w.Code, w.Body.String())
	}

	code := env.storedCode("r@x.com")
	do(t, env, "POST", "/api/auth/verify-email", `{"email":"r@x.com","verificationCode":"`+code+`"}`, nil)
	if w := do(t, env, "POST", "/api/auth/resend-verification", `{"email":"r@x.com"}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("resend after verify: %d %s", w.Code, w.Body.String())
	}
}

func Test_SocialAuth_And_BasicAuthProfile(t *testing.T) {
	env := newTestEnv(t, true)

	w := do(t, env, "POST", "/api/auth/google",
		`{"token":"assertion","email":"g@x.com","name":"G"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("google auth: %d %s", w.Code, w.Body.String())
	}
	var first struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &first)
	if first.Token == "" || first.UserID == "" {
		t.Fatalf("google resp: %s", w.Body.String())
	}

	// same email on another provider reuses the account, keeps the stored name
	w = do(t, env, "POST", "/api/auth/facebook",
		`{"token":"assertion","email":"g@x.com","name":"Other"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("facebook auth: %d %s", w.Code, w.Body.String())
	}
	var second struct {
		UserID string `json:"userId"`
		Name   string `json:"name"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &second)
	if second.UserID != first.UserID || second.Name != "G" {
		t.Fatalf("reuse: %+v vs %+v", second, first)
	}

	// OAuth-provisioned accounts are pre-verified but have no usable password
	w = do(t, env, "GET", "/api/profile", "", map[string]string{"Authorization": "Bearer " + first.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("profile via token: %d %s", w.Code, w.Body.String())
	}
	w = do(t, env, "POST", "/api/auth/login", `{"email":"g@x.com","password":"anything1"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("password login on oauth account: %d", w.Code)
	}
}

func Test_Profile_PartialUpdate_WithBasicAuth(t *testing.T) {
	env := newTestEnv(t, false)
	do(t, env, "POST", "/api/auth/register",
		`{"email":"p@x.com","password":"StrongP@ss1","name":"P","role":"SERVICE_PROVIDER","providerType":"CHEF"}`, nil)

	basic := map[string]string{"Authorization": basicAuth("p@x.com", "StrongP@ss1")}

	w := do(t, env, "PUT", "/api/profile", `{"country":"US","phoneNumber":"+1555000"}`, basic)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var got struct {
		Name         string `json:"name"`
		Country      string `json:"country"`
		PhoneNumber  string `json:"phoneNumber"`
		ProviderType string `json:"providerType"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Country != "US" || got.PhoneNumber != "+1555000" {
		t.Fatalf("fields not applied: %+v", got)
	}
	// null / absent fields are no-ops
	if got.Name != "P" || got.ProviderType != "CHEF" {
		t.Fatalf("fields clobbered: %+v", got)
	}

	// bad basic credentials never reach the handler
	w = do(t, env, "PUT", "/api/profile", `{"country":"FR"}`,
		map[string]string{"Authorization": basicAuth("p@x.com", "wrong")})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad basic: %d", w.Code)
	}
}

func Test_AdminListing_And_Logout(t *testing.T) {
	env := newTestEnv(t, false)
	do(t, env, "POST", "/api/auth/register",
		`{"email":"admin@x.com","password":"StrongP@ss1","role":"CUSTOMER"}`, nil)
	do(t, env, "POST", "/api/auth/register",
		`{"email":"second@x.com","password":"StrongP@ss1","role":"CUSTOMER"}`, nil)

	// listing requires a principal
	if w := do(t, env, "GET", "/api/admin/users", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated admin: %d", w.Code)
	}

	w := do(t, env, "GET", "/api/admin/users", "",
		map[string]string{"Authorization": basicAuth("admin@x.com", "StrongP@ss1")})
	if w.Code != http.StatusOK {
		t.Fatalf("admin list: %d %s", w.Code, w.Body.String())
	}
	var users []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil || len(users) != 2 {
		t.Fatalf("admin list: %v len=%d", err, len(users))
	}

	if w := do(t, env, "POST", "/api/auth/logout", "", nil); w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
}
