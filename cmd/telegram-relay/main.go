// File: cmd/telegram-relay/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chat-relay/internal/application"
	"chat-relay/internal/config"
	"chat-relay/internal/infra/adapters/generation"
	tele "chat-relay/internal/infra/adapters/telegram"
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

	cfg, err := config.Load(*cfgPath, config.RelayTelegram, *devMode)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(string(config.RelayTelegram), version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Generation service ----
	gen, err := generation.NewClient(cfg.Generation.URL, cfg.Generation.Timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("generation client")
	}

	// ---- Rate limiter (optional) ----
	limiter, closeLimiter, err := application.NewRateLimiter(ctx, &cfg.Redis, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer closeLimiter()

	// ---- Telegram ----
	relay := usecase.NewRelayUseCase(gen, logger, cfg.Runtime.Dev)
	bot, err := tele.NewRelayBot(cfg, relay, limiter, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}

	// ---- HTTP (health + metrics only) ----
	srv := api.NewServer(cfg, nil, nil, nil, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return application.ServeHTTP(gctx, fmt.Sprintf(":%d", cfg.HTTP.Port), srv.Routes(), logger)
	})
	g.Go(func() error {
		if err := bot.StartPolling(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("telegram polling: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("telegram relay stopped")
		closeLimiter()
		os.Exit(1)
	}
	logger.Info().Msg("telegram relay stopped")
}
