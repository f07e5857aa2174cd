// Package ratelimit implements fixed-window request throttling backed by
// Redis, with an in-process fallback for single-instance deployments.
package ratelimit

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"gatekeeper/config"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts one request against key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Params holds dependencies for NewLimiter, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Redis  *goredis.Client `optional:"true"`
	Logger *slog.Logger
}

// NewLimiter picks the Redis limiter when a client is available. It returns
// nil when rate limiting is disabled.
func NewLimiter(params Params) Limiter {
	cfg := params.Config.RateLimit
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Rate limiting disabled")

		return nil
	}

	if params.Redis != nil {
		params.Logger.Info("Using Redis rate limiter",
			slog.Int("limit", cfg.Limit),
			slog.Duration("window", cfg.Window),
		)

		return NewRedisLimiter(params.Redis, cfg.Prefix, cfg.Limit, cfg.Window)
	}

	params.Logger.Info("Using in-memory rate limiter",
		slog.Int("limit", cfg.Limit),
		slog.Duration("window", cfg.Window),
	)

	return NewMemoryLimiter(cfg.Limit, cfg.Window)
}
