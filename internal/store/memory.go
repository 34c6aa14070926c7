package store

import (
	"context"
	"sync"
	"time"

	"github.com/shrinklab/shrink/internal/redirect"
	"github.com/shrinklab/shrink/internal/shortener"
)

// MemoryURLStore is an in-memory implementation of shortener.Repository
// and redirect.RecordStore, for tests and local development. One mutex
// serializes all record access, which also gives Resolve the per-record
// linearizability the redirect engine needs.
type MemoryURLStore struct {
	mu     sync.Mutex
	urls   map[int64]*shortener.URL
	byCode map[string]int64
	nextID int64
}

// NewMemoryURLStore creates an in-memory URL store.
func NewMemoryURLStore() *MemoryURLStore {
	return &MemoryURLStore{
		urls:   make(map[int64]*shortener.URL),
		byCode: make(map[string]int64),
	}
}

func (m *MemoryURLStore) Create(_ context.Context, params shortener.CreateParams) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byCode[params.ShortCode]; exists {
		return nil, shortener.ErrDuplicateCode
	}

	m.nextID++

	url := &shortener.URL{
		ID:          m.nextID,
		OriginalURL: params.OriginalURL,
		ShortCode:   params.ShortCode,
		OwnerID:     params.OwnerID,
		CreatedAt:   time.Now(),
		ExpiresAt:   params.ExpiresAt,
		MaxClicks:   params.MaxClicks,
		OneTimeUse:  params.OneTimeUse,
	}

	m.urls[url.ID] = url
	m.byCode[url.ShortCode] = url.ID

	return cloneURL(url), nil
}

func (m *MemoryURLStore) FindByCode(_ context.Context, code string) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return cloneURL(m.urls[id]), nil
}

func (m *MemoryURLStore) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.urls[id]
	if !ok || url.OwnerID == nil || *url.OwnerID != ownerID {
		return nil, shortener.ErrNotFound
	}

	return cloneURL(url), nil
}

func (m *MemoryURLStore) Update(_ context.Context, id, ownerID int64, params shortener.UpdateParams) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.urls[id]
	if !ok || url.OwnerID == nil || *url.OwnerID != ownerID {
		return nil, shortener.ErrNotFound
	}

	if params.OriginalURL != nil {
		url.OriginalURL = *params.OriginalURL
	}

	if params.ExpiresAt != nil {
		url.ExpiresAt = params.ExpiresAt
	}

	if params.MaxClicks != nil {
		url.MaxClicks = params.MaxClicks
	}

	if params.OneTimeUse != nil {
		url.OneTimeUse = *params.OneTimeUse
	}

	if url.OneTimeUse {
		one := int64(1)
		url.MaxClicks = &one
	}

	return cloneURL(url), nil
}

func (m *MemoryURLStore) Delete(_ context.Context, id, ownerID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.urls[id]
	if !ok || url.OwnerID == nil || *url.OwnerID != ownerID {
		return false, nil
	}

	delete(m.byCode, url.ShortCode)
	delete(m.urls, id)

	return true, nil
}

func (m *MemoryURLStore) ListByOwner(_ context.Context, ownerID int64) ([]*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var urls []*shortener.URL

	for _, url := range m.urls {
		if url.OwnerID != nil && *url.OwnerID == ownerID {
			urls = append(urls, cloneURL(url))
		}
	}

	return urls, nil
}

// Resolve implements redirect.RecordStore.
func (m *MemoryURLStore) Resolve(
	_ context.Context,
	code string,
	apply func(*shortener.URL) (redirect.Mutation, error),
) (*shortener.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	url := m.urls[id]

	mut, err := apply(cloneURL(url))
	if err != nil {
		return nil, err
	}

	if mut.IncrementClicks {
		url.ClickCount++
	}

	if mut.ExpireAt != nil {
		url.ExpiresAt = mut.ExpireAt
	}

	return cloneURL(url), nil
}

func cloneURL(url *shortener.URL) *shortener.URL {
	clone := *url

	if url.OwnerID != nil {
		owner := *url.OwnerID
		clone.OwnerID = &owner
	}

	if url.ExpiresAt != nil {
		expires := *url.ExpiresAt
		clone.ExpiresAt = &expires
	}

	if url.MaxClicks != nil {
		maxClicks := *url.MaxClicks
		clone.MaxClicks = &maxClicks
	}

	return &clone
}

// Compile-time checks.
var (
	_ shortener.Repository = (*MemoryURLStore)(nil)
	_ redirect.RecordStore = (*MemoryURLStore)(nil)
)
