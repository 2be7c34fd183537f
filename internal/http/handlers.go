package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/servicehub/account-service/internal/account"
	"github.com/servicehub/account-service/internal/domain"
	"github.com/servicehub/account-service/internal/metrics"
	"github.com/servicehub/account-service/internal/payment"
	"github.com/servicehub/account-service/internal/repo"
	"github.com/servicehub/account-service/internal/security"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Accounts *account.Service
	Payments *payment.Client
	Tokens   *security.TokenIssuer
	Limiter  *repo.LoginLimiter
	Health   Pinger
}

func NewHandler(accounts *account.Service, payments *payment.Client, tokens *security.TokenIssuer, limiter *repo.LoginLimiter, health Pinger) *Handler {
	return &Handler{
		Accounts: accounts,
		Payments: payments,
		Tokens:   tokens,
		Limiter:  limiter,
		Health:   health,
	}
}

type registerReq struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Name         string `json:"name"`
	Role         string `json:"role" binding:"required,oneof=CUSTOMER SERVICE_PROVIDER"`
	ProviderType string `json:"providerType"`
}

// Register godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	res, err := h.Accounts.Register(c.Request.Context(), account.RegisterInput{
		Email:        in.Email,
		Password:     in.Password,
		Name:         in.Name,
		Role:         domain.Role(in.Role),
		ProviderType: in.ProviderType,
	})
	if err != nil {
		writeErr(c, "register", err)
		return
	}
	metrics.AuthOps.WithLabelValues("register", "ok").Inc()

	msg := "Registration successful. Email verification is disabled."
	if res.RequiresVerification {
		msg = "Registration initiated! Please check your email for verification code."
	}
	c.JSON(http.StatusCreated, gin.H{
		"userId":               res.AccountID,
		"email":                res.Email,
		"message":              msg,
		"requiresVerification": res.RequiresVerification,
	})
}

type verifyEmailReq struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// VerifyEmail godoc
// @Summary Verify email with a code
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body verifyEmailReq true "verify"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/auth/verify-email [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var in verifyEmailReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	a, err := h.Accounts.VerifyEmail(c.Request.Context(), in.Email, in.VerificationCode)
	if err != nil {
		writeErr(c, "verify", err)
		return
	}
	metrics.AuthOps.WithLabelValues("verify", "ok").Inc()

	c.JSON(http.StatusOK, gin.H{
		"userId":  a.ID.Hex(),
		"email":   a.Email,
		"message": "Email verified successfully! You can now login.",
	})
}

type resendReq struct {
	Email string `json:"email"`
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var in resendReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := h.Accounts.ResendVerification(c.Request.Context(), in.Email); err != nil {
		writeErr(c, "resend", err)
		return
	}
	metrics.AuthOps.WithLabelValues("resend", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "New verification code sent to your email"})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	sess, err := h.Accounts.Login(c.Request.Context(), account.LoginInput{
		Email:     in.Email,
		Password:  in.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		writeErr(c, "login", err)
		return
	}
	metrics.AuthOps.WithLabelValues("login", "ok").Inc()

	c.JSON(http.StatusOK, sessionResponse(sess, "Login successful!"))
}

func (h *Handler) Logout(c *gin.Context) {
	// stateless: nothing server-side to invalidate
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful!"})
}

type socialReq struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SocialAuth handles /api/auth/{google,facebook,instagram}. The provider
// token is checked by the configured verifier; with the default assertion
// verifier it is accepted as-is.
func (h *Handler) SocialAuth(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in socialReq
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		sess, err := h.Accounts.SocialAuthenticate(c.Request.Context(), account.SocialInput{
			Provider: provider,
			Email:    in.Email,
			Name:     in.Name,
			Token:    in.Token,
		})
		if err != nil {
			writeErr(c, "social", err)
			return
		}
		metrics.AuthOps.WithLabelValues("social", "ok").Inc()

		c.JSON(http.StatusOK, sessionResponse(sess, "Authentication successful!"))
	}
}

func sessionResponse(sess *account.Session, msg string) gin.H {
	return gin.H{
		"message":      msg,
		"token":        sess.Token,
		"userId":       sess.Account.ID.Hex(),
		"email":        sess.Account.Email,
		"name":         sess.Account.Name,
		"role":         sess.Account.Role,
		"providerType": sess.Account.ProviderType,
	}
}

// GetProfile godoc
// @Summary Current account profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Account
// @Failure 404 {object} map[string]string
// @Router /api/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	a := currentAccount(c)
	out, err := h.Accounts.Profile(c.Request.Context(), a.Email)
	if err != nil {
		writeErr(c, "", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type profileUpdateReq struct {
	Name              *string `json:"name"`
	ProviderType      *string `json:"providerType"`
	PreferredLanguage *string `json:"preferredLanguage"`
	Gender            *string `json:"gender"`
	Country           *string `json:"country"`
	PhoneNumber       *string `json:"phoneNumber"`
}

// UpdateProfile applies a partial update: absent or null fields are no-ops.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in profileUpdateReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	a := currentAccount(c)
	out, err := h.Accounts.UpdateProfile(c.Request.Context(), a.Email, account.ProfileUpdate{
		Name:              in.Name,
		ProviderType:      in.ProviderType,
		PreferredLanguage: in.PreferredLanguage,
		Gender:            in.Gender,
		Country:           in.Country,
		PhoneNumber:       in.PhoneNumber,
	})
	if err != nil {
		writeErr(c, "", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Accounts.ListAccounts(c.Request.Context())
	if err != nil {
		writeErr(c, "", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreatePaymentIntent passes amount (smallest currency unit) and currency
// through to the processor and returns its client secret as plain text.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount: integer required"})
		return
	}
	currency := c.Query("currency")
	if currency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency: required"})
		return
	}

	a := currentAccount(c)
	secret, err := h.Payments.CreateIntent(c.Request.Context(), a.ID, amount, currency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, secret)
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Health.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
