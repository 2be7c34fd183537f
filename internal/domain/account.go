package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role classifies an account. ProviderType refines RoleServiceProvider
// (e.g. "CHEF", "BARTENDER") and carries no meaning for customers.
type Role string

const (
	RoleCustomer        Role = "CUSTOMER"
	RoleServiceProvider Role = "SERVICE_PROVIDER"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleServiceProvider
}

// Account is the persisted identity record, one per email.
//
// VerificationCode and VerificationCodeExpiry are set together while a
// verification is pending and cleared together once it completes; after
// EmailVerified flips to true it never reverts.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	Email        string             `bson:"email"          json:"email"`
	PasswordHash string             `bson:"password_hash"  json:"-"`
	Name         string             `bson:"name"           json:"name"`
	Role         Role               `bson:"role"           json:"role"`
	ProviderType string             `bson:"provider_type,omitempty" json:"providerType,omitempty"`

	PreferredLanguage string `bson:"preferred_language,omitempty" json:"preferredLanguage,omitempty"`
	Gender            string `bson:"gender,omitempty"             json:"gender,omitempty"`
	Country           string `bson:"country,omitempty"            json:"country,omitempty"`
	PhoneNumber       string `bson:"phone_number,omitempty"       json:"phoneNumber,omitempty"`

	EmailVerified          bool       `bson:"email_verified"                     json:"emailVerified"`
	VerificationCode       string     `bson:"verification_code,omitempty"        json:"-"`
	VerificationCodeExpiry *time.Time `bson:"verification_code_expiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// VerificationPending reports whether a code is outstanding.
func (a *Account) VerificationPending() bool {
	return a.VerificationCode != "" && a.VerificationCodeExpiry != nil
}

// LoginRecord is an append-only audit entry for a successful password login.
type LoginRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id"       json:"userId"`
	LoginAt   time.Time          `bson:"login_at"      json:"loginAt"`
	IPAddress string             `bson:"ip_address"    json:"ipAddress"`
	UserAgent string             `bson:"user_agent"    json:"userAgent"`
}

// Payment statuses mirror what the processor reports back.
const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

// Payment records one processor call. Immutable except for status updates
// driven by the processor.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	CustomerID      primitive.ObjectID `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	ProviderID      primitive.ObjectID `bson:"provider_id,omitempty" json:"providerId,omitempty"`
	Amount          int64              `bson:"amount"                json:"amount"` // smallest currency unit
	Currency        string             `bson:"currency"              json:"currency"`
	Status          string             `bson:"status"                json:"status"`
	PaymentIntentID string             `bson:"payment_intent_id"     json:"paymentIntentId"`
	CreatedAt       time.Time          `bson:"created_at"            json:"createdAt"`
}
