// Package application holds the process wiring shared by both relay binaries.
package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"chat-relay/internal/config"
	"chat-relay/internal/domain/ports/adapter"
	red "chat-relay/internal/infra/redis"
)

const shutdownGrace = 10 * time.Second

// NewRateLimiter connects to Redis when cfg.URL is set. Without a URL it
// returns a nil limiter and the relays run unlimited.
func NewRateLimiter(ctx context.Context, cfg *config.RedisConfig, logger *zerolog.Logger) (adapter.RateLimiter, func(), error) {
	if cfg == nil || cfg.URL == "" {
		return nil, func() {}, nil
	}
	client, err := red.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("addr", cfg.URL).Int("limit", cfg.Limit).Dur("window", cfg.Window).Msg("rate limiter enabled")
	return red.NewRateLimiter(client), func() { _ = client.Close() }, nil
}

// ServeHTTP runs h on addr until ctx is done, then shuts down gracefully.
func ServeHTTP(ctx context.Context, addr string, h http.Handler, logger *zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
