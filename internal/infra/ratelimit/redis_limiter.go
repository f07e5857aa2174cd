package ratelimit

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"gatekeeper/internal/errors"
)

// fixedWindowScript increments the window counter and starts its expiry on
// the first hit. Returns {count, pttl}.
var fixedWindowScript = goredis.NewScript(`
local current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if current == 1 or ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return { current, ttl }
`)

type redisLimiter struct {
	client *goredis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter whose counters are shared by every
// instance talking to the same Redis.
func NewRedisLimiter(client *goredis.Client, prefix string, limit int, window time.Duration) Limiter {
	return &redisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	vals, err := fixedWindowScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return Decision{}, errors.Wrap(err, "run rate limit script")
	}

	count, ttl, err := parseScriptResult(vals)
	if err != nil {
		return Decision{}, err
	}

	return decide(l.limit, count, time.Duration(ttl)*time.Millisecond), nil
}

func decide(limit int, count int64, ttl time.Duration) Decision {
	d := Decision{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: max(0, limit-int(count)),
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}

	return d
}

func parseScriptResult(vals any) (count, ttl int64, err error) {
	arr, ok := vals.([]any)
	if !ok || len(arr) != 2 {
		return 0, 0, errors.Errorf("unexpected rate limit script result: %#v", vals)
	}

	return asInt64(arr[0]), asInt64(arr[1]), nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}

	return 0
}
