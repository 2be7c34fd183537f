package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration, read from the environment.
// Verification behavior is threaded into the account service at construction;
// nothing reads these values ambiently after startup.
type Config struct {
	Port string `envconfig:"APP_PORT" default:"8080"`
	Prod bool   `envconfig:"PROD" default:"false"`

	// Mongo. An empty URI switches the service to the in-memory store
	// (local development only).
	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGO_DB" default:"servicehub"`

	// Session tokens.
	SessionSecret string `envconfig:"SESSION_SECRET" default:"default_secret_key"`
	SessionTTLMin int    `envconfig:"SESSION_TTL_MIN" default:"60"`

	// Email verification.
	EmailVerificationEnabled bool `envconfig:"EMAIL_VERIFICATION_ENABLED" default:"true"`
	VerificationTTLSec       int  `envconfig:"VERIFICATION_TTL_SEC" default:"600"`

	// Notification queue. Empty URL falls back to the noop sink.
	RabbitURL      string `envconfig:"RABBIT_URL" default:""`
	RabbitExchange string `envconfig:"RABBIT_EXCHANGE" default:"auth.events"`

	// Redis-backed login rate limit. Empty addr disables it.
	RedisAddr       string `envconfig:"REDIS_ADDR" default:""`
	LoginRatePerMin int    `envconfig:"LOGIN_RATE_PER_MIN" default:"10"`

	StripeKey string `envconfig:"STRIPE_API_KEY" default:""`

	DDEnabled bool   `envconfig:"DD_ENABLED" default:"false"`
	DDService string `envconfig:"DD_SERVICE" default:"account-service"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

func (c Config) VerificationTTL() time.Duration {
	return time.Duration(c.VerificationTTLSec) * time.Second
}
