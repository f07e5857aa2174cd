package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter keeps one token bucket per key, refilled so that limit
// requests are allowed per window. Idle keys are swept after one window.
type memoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter creates a per-process limiter.
func NewMemoryLimiter(limit int, window time.Duration) Limiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &memoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		every := l.window / time.Duration(l.limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), l.limit)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	reservation := v.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)

		return Decision{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			RetryAfter: delay,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: int(math.Max(0, math.Floor(v.limiter.TokensAt(now)))),
	}, nil
}

func (l *memoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.window {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}
