package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/servicehub/account-service/internal/account"
	"github.com/servicehub/account-service/internal/config"
	api "github.com/servicehub/account-service/internal/http"
	"github.com/servicehub/account-service/internal/log"
	"github.com/servicehub/account-service/internal/metrics"
	"github.com/servicehub/account-service/internal/notify"
	"github.com/servicehub/account-service/internal/oauth"
	"github.com/servicehub/account-service/internal/payment"
	"github.com/servicehub/account-service/internal/repo"
	"github.com/servicehub/account-service/internal/security"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		stdlog.Fatalf("log init: %v", err)
	}
	defer log.Sync()

	if cfg.DDEnabled {
		tracer.Start(tracer.WithService(cfg.DDService))
		defer tracer.Stop()
	}

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// store: Mongo, or in-memory for local runs without one
	var (
		store    account.Store
		recorder payment.Recorder
		health   api.Pinger
	)
	if cfg.MongoURI == "" {
		mem := repo.NewMemory()
		store, recorder, health = mem, mem, mem
		logger.Warn("MONGO_URI empty, using in-memory store")
	} else {
		ms, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatal("mongo connect", zap.Error(err))
		}
		defer ms.Close(context.Background())
		if err := ms.EnsureIndexes(ctx); err != nil {
			logger.Fatal("mongo indexes", zap.Error(err))
		}
		store, recorder, health = ms, ms, ms
	}

	var sink notify.Sink = notify.NewNoop()
	if cfg.RabbitURL != "" {
		rb, err := notify.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange, cfg.VerificationTTL())
		if err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
		defer rb.Close()
		sink = rb
	}

	var limiter *repo.LoginLimiter
	if cfg.RedisAddr != "" {
		rds := repo.NewRedis(cfg.RedisAddr)
		defer rds.Close()
		limiter = repo.NewLoginLimiter(rds, cfg.LoginRatePerMin)
	}

	issuer := security.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL())
	svc := account.NewService(store, sink, oauth.NewAssertionVerifier(), issuer, account.Config{
		VerificationRequired: cfg.EmailVerificationEnabled,
		CodeTTL:              cfg.VerificationTTL(),
	})
	payments := payment.New(cfg.StripeKey, recorder)

	h := api.NewHandler(svc, payments, issuer, limiter, health)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("account-service listening", zap.String("port", cfg.Port),
		zap.Bool("verification_required", cfg.EmailVerificationEnabled))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
