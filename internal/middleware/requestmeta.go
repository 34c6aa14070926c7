package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/handlers"
)

// RequestMeta is a middleware that captures client IP, user agent, and
// referrer into the request context for click accounting.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		ctx = huma.WithContext(ctx, handlers.ContextWithRequestMeta(ctx.Context(), meta))

		next(ctx)
	}
}
