package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript runs the refill-and-take step server-side so the whole
// read-modify-write is one atomic operation, shared correctly across
// service instances. Timestamps are fractional unix seconds.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local max_tokens = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1])
local last_refill = tonumber(bucket[2])

if tokens == nil then
  tokens = max_tokens
  last_refill = now
end

local elapsed = now - last_refill
if elapsed < 0 then
  elapsed = 0
end

tokens = math.min(max_tokens, tokens + elapsed * refill_rate)

local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', now)
redis.call('EXPIRE', key, ttl)

return {allowed, tostring(tokens)}
`)

// RedisBucketStore is a Redis implementation of ratelimit.BucketStore.
type RedisBucketStore struct {
	client *redis.Client
}

// NewRedisBucketStore creates a Redis-backed token bucket store.
func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

func (s *RedisBucketStore) Take(ctx context.Context, key string, maxTokens, refillPerSec float64) (bool, float64, error) {
	now := float64(time.Now().UnixNano()) / float64(time.Second)

	// A bucket untouched long enough to refill completely carries no
	// information; let Redis evict it.
	ttl := int64(maxTokens/refillPerSec) + 60

	result, err := tokenBucketScript.Run(ctx, s.client,
		[]string{key}, maxTokens, refillPerSec, now, ttl,
	).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("token bucket script: %w", err)
	}

	if len(result) != 2 {
		return false, 0, fmt.Errorf("token bucket script: unexpected reply of %d values", len(result))
	}

	allowed, ok := result[0].(int64)
	if !ok {
		return false, 0, fmt.Errorf("token bucket script: unexpected allowed type %T", result[0])
	}

	raw, ok := result[1].(string)
	if !ok {
		return false, 0, fmt.Errorf("token bucket script: unexpected tokens type %T", result[1])
	}

	remaining, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false, 0, fmt.Errorf("token bucket script: parse tokens: %w", err)
	}

	return allowed == 1, remaining, nil
}
