package middleware

import (
	"log/slog"
	"math"
	"strconv"

	deliverycontext "gatekeeper/internal/delivery/context"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/infra/ratelimit"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Rate limit response headers.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"
)

// RateLimitParams holds dependencies for RateLimitMiddleware, injected by Fx.
type RateLimitParams struct {
	fx.In

	Limiter ratelimit.Limiter `optional:"true"`
	Logger  *slog.Logger
}

// RateLimitMiddleware throttles requests per client IP and route.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	logger  *slog.Logger
}

// NewRateLimitMiddleware creates the middleware. A nil limiter disables throttling.
func NewRateLimitMiddleware(params RateLimitParams) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: params.Limiter,
		logger:  params.Logger,
	}
}

// Limit counts the request against its key and answers 429 once the window is
// exhausted. Limiter failures let the request through.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.limiter == nil {
			return next(c)
		}

		ctx := c.Request().Context()
		decision, err := m.limiter.Allow(ctx, rateLimitKey(c))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable, allowing request",
				slog.Any("error", err),
			)

			return next(c)
		}

		header := c.Response().Header()
		header.Set(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
		header.Set(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			header.Set(HeaderRetryAfter, strconv.Itoa(retryAfter))

			return errors.WithStack(domainerrors.ErrTooManyRequests)
		}

		return next(c)
	}
}

func rateLimitKey(c echo.Context) string {
	route := c.Path()
	if route == "" {
		route = c.Request().URL.Path
	}

	return c.RealIP() + "|" + route
}
