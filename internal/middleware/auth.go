package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/auth"
	"github.com/shrinklab/shrink/internal/handlers"
)

// Authenticator returns a Huma middleware that verifies bearer tokens and
// places the caller's user id in the request context. Operations whose
// metadata sets auth.MetadataKey to true reject unauthenticated callers
// with 401; all others pass through.
func Authenticator(api huma.API, verifier auth.Verifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if token := bearerToken(ctx); token != "" {
			if userID, err := verifier.Verify(token); err == nil {
				ctx = huma.WithContext(ctx, handlers.ContextWithUserID(ctx.Context(), userID))
				next(ctx)

				return
			}
		}

		if authRequired(ctx) {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid credentials")

			return
		}

		next(ctx)
	}
}

func authRequired(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	required, ok := op.Metadata[auth.MetadataKey].(bool)

	return ok && required
}
