// File: cmd/whatsapp-relay/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"chat-relay/internal/application"
	"chat-relay/internal/config"
	"chat-relay/internal/infra/adapters/gateway"
	"chat-relay/internal/infra/adapters/generation"
	"chat-relay/internal/infra/api"
	"chat-relay/internal/infra/logging"
	"chat-relay/internal/infra/metrics"
	"chat-relay/internal/usecase"
)

// Set via -ldflags.
var (
	version = "dev"
	commit  = ""
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "", "path to YAML config file (optional; env vars override it)")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted ids)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath, config.RelayWhatsApp, *devMode)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(string(config.RelayWhatsApp), version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Generation service + delivery gateway ----
	gen, err := generation.NewClient(cfg.Generation.URL, cfg.Generation.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("generation client")
	}
	wa, err := gateway.NewWAConnect(cfg.Gateway.URL, cfg.Gateway.Token, cfg.Gateway.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("waconnect gateway")
	}

	// ---- Rate limiter (optional) ----
	limiter, closeLimiter, err := application.NewRateLimiter(ctx, &cfg.Redis, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer closeLimiter()

	// ---- HTTP webhook ----
	relay := usecase.NewRelayUseCase(gen, logger, cfg.Runtime.Dev)
	srv := api.NewServer(cfg, relay, wa, limiter, logger)

	if err := application.ServeHTTP(ctx, fmt.Sprintf(":%d", cfg.HTTP.Port), srv.Routes(), logger); err != nil {
		logger.Error().Err(err).Msg("http server error")
		closeLimiter()
		os.Exit(1)
	}
	logger.Info().Msg("whatsapp relay stopped")
}
