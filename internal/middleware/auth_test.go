package middleware_test

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/auth"
	"github.com/shrinklab/shrink/internal/handlers"
	"github.com/shrinklab/shrink/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator(t *testing.T) {
	tokens := auth.NewTokens("test-secret", 30*time.Minute)

	protectedOp := &huma.Operation{
		Path:     "/url",
		Metadata: map[string]any{auth.MetadataKey: true},
	}

	t.Run("valid token sets the user id", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Authenticator(api, tokens)

		token, err := tokens.Issue(42)
		require.NoError(t, err)

		ctx := newMockHumaContext()
		ctx.operation = protectedOp
		ctx.headers["Authorization"] = "Bearer " + token

		var gotUserID int64

		mw(ctx, func(next huma.Context) {
			userID, ok := handlers.UserIDFromContext(next.Context())
			require.True(t, ok)
			gotUserID = userID
		})

		assert.Equal(t, int64(42), gotUserID)
	})

	t.Run("missing token on a protected operation returns 401", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Authenticator(api, tokens)

		ctx := newMockHumaContext()
		ctx.operation = protectedOp

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.statusCode)
	})

	t.Run("invalid token on a protected operation returns 401", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Authenticator(api, tokens)

		ctx := newMockHumaContext()
		ctx.operation = protectedOp
		ctx.headers["Authorization"] = "Bearer garbage"

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.statusCode)
	})

	t.Run("public operations pass without credentials", func(t *testing.T) {
		api := newTestAPI()
		mw := middleware.Authenticator(api, tokens)

		ctx := newMockHumaContext()
		ctx.operation = &huma.Operation{Path: "/{code}"}

		nextCalled := false

		mw(ctx, func(next huma.Context) {
			nextCalled = true

			_, ok := handlers.UserIDFromContext(next.Context())
			assert.False(t, ok)
		})

		assert.True(t, nextCalled)
	})
}
