package ratelimit

import (
	"context"

	"go.uber.org/zap"
)

// keyPrefix namespaces bucket keys in the backing store.
const keyPrefix = "bucket:"

// Limiter decides admit/reject for an identity key.
type Limiter interface {
	// Allow reports whether a request from the given identity should be
	// admitted.
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// Config holds token bucket parameters. These are per deployment, not per
// request.
type Config struct {
	// MaxTokens is the bucket capacity.
	MaxTokens float64
	// RefillRate is tokens added per second.
	RefillRate float64
	// FailOpen admits requests when the bucket store is unreachable.
	// When false, store failures reject instead.
	FailOpen bool
}

// DefaultConfig returns the default bucket parameters.
func DefaultConfig() Config {
	return Config{MaxTokens: 10, RefillRate: 1}
}

// TokenBucketLimiter rate limits using a lazily refilled token bucket kept
// in a shared store, so all service instances see the same buckets.
type TokenBucketLimiter struct {
	store  BucketStore
	config Config
	logger *zap.Logger
}

// NewTokenBucketLimiter creates a token bucket limiter.
func NewTokenBucketLimiter(store BucketStore, config Config, logger *zap.Logger) *TokenBucketLimiter {
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultConfig().MaxTokens
	}

	if config.RefillRate <= 0 {
		config.RefillRate = DefaultConfig().RefillRate
	}

	return &TokenBucketLimiter{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Allow takes one token from the identity's bucket. Store failures are
// resolved by the configured fail-open/fail-closed policy rather than
// surfaced, rate limiting must not take the service down with it.
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string) (bool, error) {
	allowed, remaining, err := l.store.Take(ctx, keyPrefix+key, l.config.MaxTokens, l.config.RefillRate)
	if err != nil {
		l.logger.Error("token bucket store failed",
			zap.String("key", key),
			zap.Bool("fail_open", l.config.FailOpen),
			zap.Error(err),
		)

		return l.config.FailOpen, nil
	}

	if !allowed {
		l.logger.Debug("rate limit exceeded",
			zap.String("key", key),
			zap.Float64("remaining", remaining),
		)
	}

	return allowed, nil
}
