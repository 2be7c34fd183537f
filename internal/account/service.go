// Package account implements the verification-gated lifecycle of an identity
// record: registration, email verification, login and social provisioning.
// Every operation is a single read-modify-write against the store; the unique
// email constraint is the only serialization point.
package account

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/servicehub/account-service/internal/domain"
	"github.com/servicehub/account-service/internal/log"
	"github.com/servicehub/account-service/internal/metrics"
	"github.com/servicehub/account-service/internal/oauth"
	"github.com/servicehub/account-service/internal/security"
)

// Store is the durable account mapping. FindByEmail and FindByID return
// (nil, nil) when nothing matches; Insert returns domain.ErrDuplicateEmail
// when the email is taken.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
	FindAll(ctx context.Context) ([]domain.Account, error)
	AppendLogin(ctx context.Context, rec domain.LoginRecord) error
}

// Notifier delivers a verification code. Failures are logged, never
// propagated: the account state change has already committed and Resend is
// the recovery path.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// TokenIssuer mints a session token for a successful authentication.
type TokenIssuer interface {
	Issue(uid, email, role string) (string, error)
}

// Config is fixed at construction; nothing here is read from global state.
type Config struct {
	// VerificationRequired gates both registration (pending state + code
	// dispatch) and login (verified accounts only).
	VerificationRequired bool
	// CodeTTL is how long a verification code stays valid. Zero means 10
	// minutes.
	CodeTTL time.Duration
}

type Service struct {
	store    Store
	sink     Notifier
	verifier oauth.Verifier
	tokens   TokenIssuer
	cfg      Config

	now func() time.Time
}

func NewService(store Store, sink Notifier, verifier oauth.Verifier, tokens TokenIssuer, cfg Config) *Service {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 10 * time.Minute
	}
	return &Service{
		store:    store,
		sink:     sink,
		verifier: verifier,
		tokens:   tokens,
		cfg:      cfg,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	Role         domain.Role
	ProviderType string
}

type RegisterResult struct {
	AccountID            string
	Email                string
	RequiresVerification bool
}

// Register creates the account, hashing the password and, when verification
// is required, putting the record into the pending state before dispatching
// the code. Dispatch failure does not roll back creation.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if existing, err := s.store.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	a := &domain.Account{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		ProviderType: in.ProviderType,
	}
	if s.cfg.VerificationRequired {
		expiry := s.now().Add(s.cfg.CodeTTL)
		a.EmailVerified = false
		a.VerificationCode = security.NewVerificationCode()
		a.VerificationCodeExpiry = &expiry
	} else {
		a.EmailVerified = true
	}

	if err := s.store.Insert(ctx, a); err != nil {
		if err == domain.ErrDuplicateEmail {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.cfg.VerificationRequired {
		s.dispatchCode(ctx, a.Email, a.VerificationCode)
	}

	return &RegisterResult{
		AccountID:            a.ID.Hex(),
		Email:                a.Email,
		RequiresVerification: s.cfg.VerificationRequired,
	}, nil
}

// VerifyEmail consumes a pending code. A code is valid strictly before its
// expiry instant. Once verification succeeds the fields are cleared, so a
// replayed call fails as a mismatch.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (*domain.Account, error) {
	if email == "" || code == "" {
		return nil, badRequest(ReasonMissingFields, "Email and verification code are required")
	}
	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	if !a.VerificationPending() {
		return nil, badRequest(ReasonMismatch, "Invalid verification code")
	}
	if !s.now().Before(*a.VerificationCodeExpiry) {
		return nil, badRequest(ReasonExpired, "Verification code has expired. Please request a new one.")
	}
	if code != a.VerificationCode {
		return nil, badRequest(ReasonMismatch, "Invalid verification code")
	}

	a.EmailVerified = true
	a.VerificationCode = ""
	a.VerificationCodeExpiry = nil
	if err := s.store.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ResendVerification replaces any outstanding code with a fresh one and
// resets the expiry window. No frequency limit.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	if email == "" {
		return badRequest(ReasonMissingFields, "Email is required")
	}
	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if a.EmailVerified {
		return badRequest(ReasonAlreadyVerified, "Email is already verified")
	}

	expiry := s.now().Add(s.cfg.CodeTTL)
	a.VerificationCode = security.NewVerificationCode()
	a.VerificationCodeExpiry = &expiry
	if err := s.store.Update(ctx, a); err != nil {
		return err
	}

	s.dispatchCode(ctx, a.Email, a.VerificationCode)
	return nil
}

// CheckCredentials authenticates email+password. Unknown email and wrong
// password collapse into the same ErrUnauthorized; an unverified account is
// rejected separately when the verification gate is on.
func (s *Service) CheckCredentials(ctx context.Context, email, password string) (*domain.Account, error) {
	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil || !security.CheckPassword(a.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	if s.cfg.VerificationRequired && !a.EmailVerified {
		return nil, ErrNotVerified
	}
	return a, nil
}

type LoginInput struct {
	Email    string
	Password string

	// Audit metadata for the login record.
	IP        string
	UserAgent string
}

type Session struct {
	Account *domain.Account
	Token   string
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	a, err := s.CheckCredentials(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	tok, err := s.tokens.Issue(a.ID.Hex(), a.Email, string(a.Role))
	if err != nil {
		return nil, err
	}

	if err := s.store.AppendLogin(ctx, domain.LoginRecord{
		UserID:    a.ID,
		IPAddress: in.IP,
		UserAgent: in.UserAgent,
	}); err != nil {
		log.WithDD(ctx, log.L()).Warn("login record append failed",
			zap.String("account_id", a.ID.Hex()), zap.Error(err))
	}

	return &Session{Account: a, Token: tok}, nil
}

type SocialInput struct {
	Provider string
	Email    string
	Name     string
	Token    string
}

// SocialAuthenticate reuses the account matching the asserted email, or
// provisions one: role CUSTOMER, an unusable random password hash, and
// emailVerified set unconditionally. An existing account's stored name wins
// over the social payload.
func (s *Service) SocialAuthenticate(ctx context.Context, in SocialInput) (*Session, error) {
	claims, err := s.verifier.VerifyProviderToken(ctx, in.Provider, in.Token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	email := in.Email
	if claims.Email != "" {
		email = claims.Email
	}
	name := in.Name
	if claims.Name != "" {
		name = claims.Name
	}
	if email == "" {
		return nil, badRequest(ReasonMissingFields, "Email is required")
	}

	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		pw, err := security.RandomPassword()
		if err != nil {
			return nil, err
		}
		hash, err := security.HashPassword(pw)
		if err != nil {
			return nil, err
		}
		a = &domain.Account{
			Email:         email,
			PasswordHash:  hash,
			Name:          name,
			Role:          domain.RoleCustomer,
			EmailVerified: true,
		}
		if err := s.store.Insert(ctx, a); err != nil {
			if err != domain.ErrDuplicateEmail {
				return nil, err
			}
			// lost the insert race; the concurrent winner's record stands
			if a, err = s.store.FindByEmail(ctx, email); err != nil {
				return nil, err
			} else if a == nil {
				return nil, domain.ErrNotFound
			}
		}
	}

	tok, err := s.tokens.Issue(a.ID.Hex(), a.Email, string(a.Role))
	if err != nil {
		return nil, err
	}
	return &Session{Account: a, Token: tok}, nil
}

// Profile returns the account for an authenticated principal.
func (s *Service) Profile(ctx context.Context, email string) (*domain.Account, error) {
	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// ProfileUpdate carries partial updates: nil fields are no-ops. Email and
// password are deliberately not updatable here.
type ProfileUpdate struct {
	Name              *string
	ProviderType      *string
	PreferredLanguage *string
	Gender            *string
	Country           *string
	PhoneNumber       *string
}

func (s *Service) UpdateProfile(ctx context.Context, email string, in ProfileUpdate) (*domain.Account, error) {
	a, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}

	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.ProviderType != nil {
		a.ProviderType = *in.ProviderType
	}
	if in.PreferredLanguage != nil {
		a.PreferredLanguage = *in.PreferredLanguage
	}
	if in.Gender != nil {
		a.Gender = *in.Gender
	}
	if in.Country != nil {
		a.Country = *in.Country
	}
	if in.PhoneNumber != nil {
		a.PhoneNumber = *in.PhoneNumber
	}

	if err := s.store.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAccounts is the administrative listing: everything, unpaginated.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) dispatchCode(ctx context.Context, email, code string) {
	if err := s.sink.SendVerificationCode(ctx, email, code); err != nil {
		metrics.VerificationSends.WithLabelValues("error").Inc()
		log.WithDD(ctx, log.L()).Warn("verification code dispatch failed",
			zap.String("email", email), zap.Error(err))
		return
	}
	metrics.VerificationSends.WithLabelValues("ok").Inc()
}
