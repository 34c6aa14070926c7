package store

import (
	"context"
	"sync"

	"github.com/shrinklab/shrink/internal/clicks"
)

// MemoryClickStore is an in-memory implementation of clicks.Store.
type MemoryClickStore struct {
	mu      sync.Mutex
	entries map[int64][]*clicks.Entry
	nextID  int64
}

// NewMemoryClickStore creates an in-memory click ledger store.
func NewMemoryClickStore() *MemoryClickStore {
	return &MemoryClickStore{
		entries: make(map[int64][]*clicks.Entry),
	}
}

func (m *MemoryClickStore) Append(_ context.Context, event *clicks.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++

	m.entries[event.URLID] = append(m.entries[event.URLID], &clicks.Entry{
		ID:        m.nextID,
		URLID:     event.URLID,
		ClickedAt: event.ClickedAt,
		Referrer:  event.Referrer,
		UserAgent: event.UserAgent,
		ClientIP:  event.ClientIP,
	})

	return nil
}

func (m *MemoryClickStore) ListByURL(_ context.Context, urlID int64) ([]*clicks.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]*clicks.Entry, len(m.entries[urlID]))
	copy(entries, m.entries[urlID])

	return entries, nil
}

var _ clicks.Store = (*MemoryClickStore)(nil)
