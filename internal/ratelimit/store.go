package ratelimit

import "context"

// BucketStore performs one atomic token-bucket step for a key.
//
// Implementations must make the whole read-refill-take-write sequence
// atomic with respect to concurrent calls for the same key; a get-then-set
// pair is not acceptable, two racing requests could both observe a stale
// token count and double-admit.
type BucketStore interface {
	// Take refills the bucket for key from the elapsed time since the
	// last refill, caps it at maxTokens, and removes one token if at
	// least one is available. It returns whether a token was taken and
	// the token count left afterwards. Unknown keys start with a full
	// bucket.
	Take(ctx context.Context, key string, maxTokens, refillPerSec float64) (allowed bool, remaining float64, err error)
}
