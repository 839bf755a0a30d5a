package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"guildchat/internal/config"
	"guildchat/internal/observability/logging"
	"guildchat/internal/observability/metrics"
	"guildchat/internal/observability/middleware"
	"guildchat/internal/service/impl"
	"guildchat/internal/store"
	httpx "guildchat/internal/transport/http"
	"guildchat/pkg/db"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "guildchat",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	cfg := config.Load()
	metrics.MustRegister("guildchat")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		logger.Error("automigrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	pw := impl.NewPasswordServicePBKDF2()
	ts, err := impl.NewTokenService(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		Algorithm:  cfg.SigningAlgorithm,
		SigningKey: []byte(cfg.SigningKey),
	})
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}

	auth := impl.NewAuthServiceImpl(impl.AuthConfig{
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}, st, pw, ts)
	users := impl.NewUserServiceImpl(st, pw)
	friends := impl.NewFriendServiceImpl(st)
	messages := impl.NewMessageServiceImpl(st)
	channels := impl.NewChannelServiceImpl(st)

	mux := httpx.NewRouter(auth, users, friends, messages, channels)
	handler := middleware.WithRequestAndTrace(middleware.WithMetrics(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("guildchat listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
