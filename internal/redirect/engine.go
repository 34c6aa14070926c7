package redirect

import (
	"context"
	"errors"
	"time"

	"github.com/shrinklab/shrink/internal/clicks"
	"github.com/shrinklab/shrink/internal/messaging"
	"github.com/shrinklab/shrink/internal/shortener"
	"go.uber.org/zap"
)

var (
	errExpired   = errors.New("url expired")
	errExhausted = errors.New("url click limit reached")
)

// ClickMeta carries request metadata recorded with each click.
type ClickMeta struct {
	Referrer  string
	UserAgent string
	ClientIP  string
}

// Mutation describes the record change to persist within a resolve transaction.
type Mutation struct {
	IncrementClicks bool
	ExpireAt        *time.Time
}

// RecordStore provides serialized read-modify-write access to one record.
type RecordStore interface {
	// Resolve looks up the record for code, passes it to apply under a
	// per-record lock, and persists the returned mutation in the same
	// transaction. An error from apply rolls the transaction back and is
	// returned unwrapped for errors.Is. Concurrent resolves for the same
	// code observe a serialized sequence of states.
	Resolve(ctx context.Context, code string, apply func(*shortener.URL) (Mutation, error)) (*shortener.URL, error)
}

// Engine decides whether a short code still redirects and accounts for the
// click when it does.
type Engine struct {
	store        RecordStore
	publishClick messaging.Publish[clicks.Event]
	logger       *zap.Logger
	now          func() time.Time
}

// NewEngine creates a redirect engine.
func NewEngine(store RecordStore, publishClick messaging.Publish[clicks.Event], logger *zap.Logger) *Engine {
	return &Engine{
		store:        store,
		publishClick: publishClick,
		logger:       logger,
		now:          time.Now,
	}
}

// Redirect resolves a short code into an Outcome. The checks run in order:
// existence, expiration, click ceiling. On success the click counter is
// incremented and, for one-time-use records, the expiration is stamped to
// now, all inside one store transaction. The click ledger append is
// best-effort and never fails the redirect.
func (e *Engine) Redirect(ctx context.Context, code string, meta ClickMeta) Outcome {
	now := e.now()

	record, err := e.store.Resolve(ctx, code, func(u *shortener.URL) (Mutation, error) {
		if u.Expired(now) {
			return Mutation{}, errExpired
		}

		if u.Exhausted() {
			return Mutation{}, errExhausted
		}

		mut := Mutation{IncrementClicks: true}
		if u.OneTimeUse {
			expireAt := now
			mut.ExpireAt = &expireAt
		}

		return mut, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, shortener.ErrNotFound):
		return Outcome{Reason: ReasonNotFound}
	case errors.Is(err, errExpired):
		e.logger.Debug("redirect refused, url expired", zap.String("code", code))

		return Outcome{Reason: ReasonExpired}
	case errors.Is(err, errExhausted):
		e.logger.Debug("redirect refused, click limit reached", zap.String("code", code))

		return Outcome{Reason: ReasonLimitReached}
	default:
		e.logger.Error("redirect resolution failed",
			zap.String("code", code),
			zap.Error(err),
		)

		return Outcome{Reason: ReasonError, Err: err}
	}

	event := &clicks.Event{
		URLID:     record.ID,
		Code:      record.ShortCode,
		ClickedAt: now,
		Referrer:  meta.Referrer,
		UserAgent: meta.UserAgent,
		ClientIP:  meta.ClientIP,
	}

	if err := e.publishClick(event); err != nil {
		// Ledger append is best-effort; the redirect already committed.
		e.logger.Error("failed to publish click event",
			zap.String("code", record.ShortCode),
			zap.Error(err),
		)
	}

	return Outcome{Reason: ReasonRedirect, TargetURL: record.OriginalURL}
}

// WithClock overrides the engine clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now

	return e
}
