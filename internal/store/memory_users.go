package store

import (
	"context"
	"sync"
	"time"

	"github.com/shrinklab/shrink/internal/auth"
)

// MemoryUserStore is an in-memory implementation of auth.UserRepository.
type MemoryUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*auth.User
	nextID  int64
}

// NewMemoryUserStore creates an in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byEmail: make(map[string]*auth.User),
	}
}

func (m *MemoryUserStore) Create(_ context.Context, email, passwordHash string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, auth.ErrEmailTaken
	}

	m.nextID++

	user := &auth.User{
		ID:           m.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	m.byEmail[email] = user

	clone := *user

	return &clone, nil
}

func (m *MemoryUserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

var _ auth.UserRepository = (*MemoryUserStore)(nil)
