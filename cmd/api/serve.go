package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/storerating/rating-system/internal/api"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/core/service"
	"github.com/storerating/rating-system/internal/infrastructure/config"
	redisdb "github.com/storerating/rating-system/internal/infrastructure/db/redis"
	"github.com/storerating/rating-system/internal/infrastructure/http"
	"github.com/storerating/rating-system/internal/infrastructure/http/handlers"
	"github.com/storerating/rating-system/internal/infrastructure/security"
	"github.com/storerating/rating-system/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Configuration is read from the environment (see internal/infrastructure/config).
The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "store-ratings",
	})

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage(store, log)

	health := []handlers.Dependency{store.probe}

	var limiter ports.LoginLimiter
	if cfg.Redis.Enabled {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		limiter = redisdb.NewLoginLimiter(client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		health = append(health, handlers.Dependency{Name: "redis", Probe: redisdb.Probe(client)})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := security.NewJWTIssuer(cfg.Auth.JWTSecret)

	e := api.NewRouter(api.Deps{
		Auth: service.NewAuthService(store.users, hasher, tokens, limiter, cfg.Auth.TokenTTL,
			logger.Component("auth")),
		Ratings:    service.NewRatingService(store.users, store.stores, store.ratings, logger.Component("ratings")),
		Admin:      service.NewAdminService(store.users, store.stores, store.ratings, hasher, logger.Component("admin")),
		Tokens:     tokens,
		Health:     health,
		Log:        log,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	log.Info().Str("storage", cfg.Storage.Driver).Str("env", cfg.Env).Msg("starting store rating api")
	if err := http.NewServer(e, cfg.Port, cfg.ShutdownTimeout, log).Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func closeStorage(s *storage, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := s.close(ctx); err != nil {
		log.Warn().Err(err).Msg("closing storage")
	}
}
