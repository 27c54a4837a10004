package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"neurobiomark/internal/domain"
)

// tokenBucketScript refills and consumes one token atomically.
// KEYS[1] = bucket key
// ARGV[1] = refill rate (tokens per second)
// ARGV[2] = capacity
// ARGV[3] = now (unix seconds, fractional)
// ARGV[4] = key ttl (seconds)
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call("HMGET", key, "tokens", "last_refill")
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if not tokens or not last_refill then
    tokens = capacity
    last_refill = now
end

local elapsed = now - last_refill
if elapsed > 0 then
    tokens = math.min(capacity, tokens + elapsed * rate)
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end

redis.call("HSET", key, "tokens", tokens, "last_refill", last_refill)
redis.call("EXPIRE", key, ttl)

return allowed
`)

// Redis is a token bucket limiter shared by every server instance through Redis.
type Redis struct {
	client redis.Scripter
	prefix string
	rps    float64
	burst  int
	ttl    time.Duration
	now    func() time.Time
}

var _ domain.Limiter = (*Redis)(nil)

// NewRedis creates a shared limiter with the same refill semantics as Memory.
func NewRedis(client redis.Scripter, prefix string, rps float64, burst int) *Redis {
	if burst < 1 {
		burst = 1
	}
	if rps <= 0 {
		rps = 1
	}
	// Keep a bucket until it would have refilled completely.
	ttl := time.Duration(float64(burst)/rps*float64(time.Second)) + time.Minute
	return &Redis{client: client, prefix: prefix, rps: rps, burst: burst, ttl: ttl, now: time.Now}
}

// NewRedisFromURL parses a redis:// URL and returns the client and limiter.
func NewRedisFromURL(redisURL, prefix string, rps float64, burst int) (*redis.Client, *Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	return client, NewRedis(client, prefix, rps, burst), nil
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	now := float64(r.now().UnixMicro()) / 1e6
	res, err := tokenBucketScript.Run(ctx, r.client, []string{r.prefix + key},
		r.rps, r.burst, now, int(r.ttl.Seconds())).Int64()
	if err != nil {
		return false, fmt.Errorf("redis limiter: %w", err)
	}
	return res == 1, nil
}
