package store

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// MemoryBucketStore is an in-memory implementation of ratelimit.BucketStore.
// It mirrors the Redis script's math exactly so both backends admit the
// same request sequences. The mutex gives single-process atomicity.
type MemoryBucketStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryBucketStore creates an in-memory token bucket store.
func NewMemoryBucketStore() *MemoryBucketStore {
	return &MemoryBucketStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// WithClock overrides the store clock. Intended for tests.
func (s *MemoryBucketStore) WithClock(now func() time.Time) *MemoryBucketStore {
	s.now = now

	return s
}

func (s *MemoryBucketStore) Take(_ context.Context, key string, maxTokens, refillPerSec float64) (bool, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: maxTokens, lastRefill: now}
		s.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	b.tokens = min(maxTokens, b.tokens+elapsed*refillPerSec)
	b.lastRefill = now

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}

	return allowed, b.tokens, nil
}
