package clicks

import (
	"context"
	"time"
)

// Entry is one row of the click ledger.
type Entry struct {
	ID        int64
	URLID     int64
	ClickedAt time.Time
	Referrer  string
	UserAgent string
	ClientIP  string
}

// Store persists and reads the append-only click ledger. Entries are never
// mutated; they disappear only when the owning URL record is deleted.
type Store interface {
	Append(ctx context.Context, event *Event) error
	ListByURL(ctx context.Context, urlID int64) ([]*Entry, error)
}
