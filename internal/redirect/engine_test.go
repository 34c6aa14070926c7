package redirect_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shrinklab/shrink/internal/clicks"
	"github.com/shrinklab/shrink/internal/redirect"
	"github.com/shrinklab/shrink/internal/shortener"
	"github.com/shrinklab/shrink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURL = "https://example.com"

type capturingPublisher struct {
	mu     sync.Mutex
	events []*clicks.Event
	err    error
}

func (p *capturingPublisher) publish(event *clicks.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}

	p.events = append(p.events, event)

	return nil
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.events)
}

func newTestEngine(recordStore redirect.RecordStore) (*redirect.Engine, *capturingPublisher) {
	publisher := &capturingPublisher{}
	engine := redirect.NewEngine(recordStore, publisher.publish, zap.NewNop())

	return engine, publisher
}

func mustCreate(t *testing.T, s *store.MemoryURLStore, params shortener.CreateParams) *shortener.URL {
	t.Helper()

	if params.OriginalURL == "" {
		params.OriginalURL = testURL
	}

	record, err := s.Create(context.Background(), params)
	require.NoError(t, err)

	return record
}

func TestRedirect(t *testing.T) {
	t.Run("redirects and counts the click", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		record := mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123"})

		engine, publisher := newTestEngine(memStore)

		outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{
			Referrer:  "https://referrer.example",
			UserAgent: "TestAgent/1.0",
			ClientIP:  "192.0.2.1",
		})

		assert.Equal(t, redirect.ReasonRedirect, outcome.Reason)
		assert.Equal(t, testURL, outcome.TargetURL)

		updated, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.ClickCount)

		require.Equal(t, 1, publisher.count())
		event := publisher.events[0]
		assert.Equal(t, record.ID, event.URLID)
		assert.Equal(t, "abc123", event.Code)
		assert.Equal(t, "https://referrer.example", event.Referrer)
		assert.Equal(t, "TestAgent/1.0", event.UserAgent)
		assert.Equal(t, "192.0.2.1", event.ClientIP)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		engine, publisher := newTestEngine(store.NewMemoryURLStore())

		outcome := engine.Redirect(context.Background(), "nosuch", redirect.ClickMeta{})

		assert.Equal(t, redirect.ReasonNotFound, outcome.Reason)
		assert.True(t, outcome.Gone())
		assert.Zero(t, publisher.count())
	})

	t.Run("expired record presents as gone", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		past := time.Now().Add(-time.Hour)
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123", ExpiresAt: &past})

		engine, publisher := newTestEngine(memStore)

		outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})

		assert.Equal(t, redirect.ReasonExpired, outcome.Reason)
		assert.True(t, outcome.Gone())
		assert.Zero(t, publisher.count())

		// The refused click must not be counted.
		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(0), record.ClickCount)
	})

	t.Run("click ceiling exhausts the record", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		two := int64(2)
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123", MaxClicks: &two})

		engine, _ := newTestEngine(memStore)

		for range 2 {
			outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
			assert.Equal(t, redirect.ReasonRedirect, outcome.Reason)
		}

		outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})

		assert.Equal(t, redirect.ReasonLimitReached, outcome.Reason)
		assert.True(t, outcome.Gone())

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), record.ClickCount)
	})

	t.Run("one-time use expires after the first redirect", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123", OneTimeUse: true})

		engine, _ := newTestEngine(memStore)

		first := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
		assert.Equal(t, redirect.ReasonRedirect, first.Reason)

		second := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
		assert.True(t, second.Gone())

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.ClickCount)
		assert.NotNil(t, record.ExpiresAt)
	})

	t.Run("one-time use admits a single click even without a ceiling", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123", OneTimeUse: true})

		// A frozen clock keeps the stamped expiry from ever reading as
		// past; the click count alone must refuse the second redirect.
		now := time.Now()
		publisher := &capturingPublisher{}
		engine := redirect.NewEngine(memStore, publisher.publish, zap.NewNop()).
			WithClock(func() time.Time { return now })

		first := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
		require.Equal(t, redirect.ReasonRedirect, first.Reason)

		second := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
		assert.Equal(t, redirect.ReasonLimitReached, second.Reason)
		assert.True(t, second.Gone())

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.ClickCount)
	})

	t.Run("sequential redirects count exactly once each", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123"})

		engine, publisher := newTestEngine(memStore)

		const n = 50

		for range n {
			outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
			require.Equal(t, redirect.ReasonRedirect, outcome.Reason)
		}

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(n), record.ClickCount)
		assert.Equal(t, n, publisher.count())
	})

	t.Run("concurrent redirects count exactly once each", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123"})

		engine, _ := newTestEngine(memStore)

		const n = 50

		var wg sync.WaitGroup

		for range n {
			wg.Add(1)

			go func() {
				defer wg.Done()

				outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
				assert.Equal(t, redirect.ReasonRedirect, outcome.Reason)
			}()
		}

		wg.Wait()

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(n), record.ClickCount)
	})

	t.Run("single-use record admits exactly one of many racing redirects", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		one := int64(1)
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123", MaxClicks: &one})

		engine, _ := newTestEngine(memStore)

		const k = 20

		outcomes := make([]redirect.Outcome, k)

		var wg sync.WaitGroup

		for i := range k {
			wg.Add(1)

			go func() {
				defer wg.Done()

				outcomes[i] = engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})
			}()
		}

		wg.Wait()

		var redirected, gone int

		for _, outcome := range outcomes {
			switch {
			case outcome.Reason == redirect.ReasonRedirect:
				redirected++
			case outcome.Gone():
				gone++
			}
		}

		assert.Equal(t, 1, redirected)
		assert.Equal(t, k-1, gone)

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.ClickCount)
	})

	t.Run("publish failure does not fail the redirect", func(t *testing.T) {
		memStore := store.NewMemoryURLStore()
		mustCreate(t, memStore, shortener.CreateParams{ShortCode: "abc123"})

		publisher := &capturingPublisher{err: errors.New("broker down")}
		engine := redirect.NewEngine(memStore, publisher.publish, zap.NewNop())

		outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})

		assert.Equal(t, redirect.ReasonRedirect, outcome.Reason)

		record, err := memStore.FindByCode(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.ClickCount)
	})

	t.Run("store failure surfaces as an internal error", func(t *testing.T) {
		engine, _ := newTestEngine(failingRecordStore{})

		outcome := engine.Redirect(context.Background(), "abc123", redirect.ClickMeta{})

		assert.Equal(t, redirect.ReasonError, outcome.Reason)
		assert.False(t, outcome.Gone())
		assert.Error(t, outcome.Err)
	})
}

type failingRecordStore struct{}

func (failingRecordStore) Resolve(
	context.Context, string, func(*shortener.URL) (redirect.Mutation, error),
) (*shortener.URL, error) {
	return nil, errors.New("connection refused")
}
