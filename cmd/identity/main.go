package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"carmeet/internal/config"
	"carmeet/internal/mailer"
	"carmeet/internal/observability/logging"
	"carmeet/internal/observability/metrics"
	"carmeet/internal/observability/middleware"
	impl "carmeet/internal/service/impl"
	"carmeet/internal/store"
	httpx "carmeet/internal/transport/http"
	"carmeet/pkg/db"

	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "identity",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	metrics.MustRegister("identity")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.DBLogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)
	if cfg.AutoMigrate {
		if err := st.AutoMigrate(); err != nil {
			logger.Error("auto migrate", "error", err)
			os.Exit(1)
		}
	}

	pw := impl.NewPasswordServiceBcrypt()

	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:        cfg.Issuer,
		ActivationTTL: impl.DefaultActivationTTL,
		AccessTTL:     impl.ParseLifetime(cfg.AccessTokenTTL),
		SigningKey:    []byte(cfg.SigningKey),
	})

	codes := impl.NewRandomCodeGenerator()
	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)

	identity := impl.NewIdentityService(st, pw, ts, codes, mail, cfg.BaseURL)

	mux := httpx.NewRouter(identity, ts, cfg.FrontendURL)
	handler := middleware.WithRequestID(middleware.WithMetrics(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("identity service listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
