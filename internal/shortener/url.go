package shortener

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record matches the given code or id.
	ErrNotFound = errors.New("url not found")

	// ErrDuplicateCode is returned when a short code is already taken.
	ErrDuplicateCode = errors.New("short code already in use")
)

// URL represents a shortened URL record.
type URL struct {
	ID          int64
	OriginalURL string
	ShortCode   string
	OwnerID     *int64 // nil for anonymous creation
	ClickCount  int64
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	MaxClicks   *int64
	OneTimeUse  bool
}

// Expired reports whether the record is past its expiration time.
func (u *URL) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && u.ExpiresAt.Before(now)
}

// Exhausted reports whether the record has reached its click ceiling.
// A one-time-use record admits a single click regardless of MaxClicks, so
// the decision never depends on the expiry timestamp it stamps.
func (u *URL) Exhausted() bool {
	if u.OneTimeUse && u.ClickCount >= 1 {
		return true
	}

	return u.MaxClicks != nil && u.ClickCount >= *u.MaxClicks
}

// CreateParams holds the fields needed to create a URL record.
type CreateParams struct {
	OriginalURL string
	ShortCode   string
	OwnerID     *int64
	ExpiresAt   *time.Time
	MaxClicks   *int64
	OneTimeUse  bool
}

// UpdateParams holds optional fields for a partial update.
// Nil fields are left untouched.
type UpdateParams struct {
	OriginalURL *string
	ExpiresAt   *time.Time
	MaxClicks   *int64
	OneTimeUse  *bool
}
