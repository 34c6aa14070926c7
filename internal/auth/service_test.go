package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/shrinklab/shrink/internal/auth"
	"github.com/shrinklab/shrink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *auth.Service {
	tokens := auth.NewTokens(testSecret, 30*time.Minute)

	return auth.NewService(store.NewMemoryUserStore(), tokens, zap.NewNop())
}

func TestRegister(t *testing.T) {
	t.Run("creates the account and issues a token", func(t *testing.T) {
		service := newTestService()

		user, token, err := service.Register(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "s3cret", user.PasswordHash)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.Register(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)

		_, _, err = service.Register(context.Background(), "alice@example.com", "other")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		service := newTestService()

		registered, _, err := service.Register(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)

		user, token, err := service.Login(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.Register(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)

		_, _, err = service.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		service := newTestService()

		_, _, err := service.Login(context.Background(), "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
