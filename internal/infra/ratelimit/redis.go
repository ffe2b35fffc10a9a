package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"secops/internal/domain"
)

// incrWithExpire bumps the window counter and stamps the window's expiry on
// first increment, returning the count and the remaining window in ms.
var incrWithExpire = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisLimiter is a fixed-window counter shared across instances.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: "ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (domain.RateLimitDecision, error) {
	res, err := incrWithExpire.Run(ctx, l.client, []string{l.prefix + key}, window.Milliseconds()).Slice()
	if err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("ratelimit: %w", err)
	}
	if len(res) != 2 {
		return domain.RateLimitDecision{}, fmt.Errorf("ratelimit: unexpected script reply %v", res)
	}
	count, _ := res[0].(int64)
	ttlMS, _ := res[1].(int64)
	if ttlMS < 0 {
		ttlMS = window.Milliseconds()
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return domain.RateLimitDecision{
		Allowed:   int(count) <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(time.Duration(ttlMS) * time.Millisecond),
	}, nil
}
