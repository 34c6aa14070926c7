package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a Huma middleware that gates every request through
// the token bucket limiter, keyed by resolved identity. Rejections get a
// structured 429 body.
func RateLimiter(
	api huma.API,
	limiter ratelimit.Limiter,
	identity *IdentityResolver,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := identity.Resolve(ctx)

		allowed, err := limiter.Allow(ctx.Context(), key)
		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("key", key),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.URL().Path),
			)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests,
				"rate limit exceeded, please try again later")

			return
		}

		next(ctx)
	}
}
