package cartstore

import (
	"context"
	"sync"

	"github.com/vxxious/aunty-burger/internal/cart"
)

// LocalStore keeps saved carts in process memory. It is the default when
// no Redis address is configured, and the store used in tests.
type LocalStore struct {
	mu    sync.RWMutex
	store map[string][]cart.Line
}

// NewLocalStore returns an empty in-memory store.
func NewLocalStore() *LocalStore {
	return &LocalStore{store: make(map[string][]cart.Line)}
}

// Load returns the saved lines for a session, empty if none exist.
func (l *LocalStore) Load(ctx context.Context, sessionID string) ([]cart.Line, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	saved := l.store[sessionID]
	out := make([]cart.Line, len(saved))
	copy(out, saved)
	return out, nil
}

// Save replaces the saved lines for a session.
func (l *LocalStore) Save(ctx context.Context, sessionID string, lines []cart.Line) error {
	cp := make([]cart.Line, len(lines))
	copy(cp, lines)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.store[sessionID] = cp
	return nil
}

// Ping always succeeds for the in-memory store.
func (l *LocalStore) Ping(ctx context.Context) bool { return true }
