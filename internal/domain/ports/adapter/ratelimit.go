package adapter

import (
	"context"
	"time"
)

// RateLimiter is an optional fixed-window limiter keyed by sender.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
