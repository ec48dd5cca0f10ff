package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vxxious/aunty-burger/internal/cart"
)

// saveTimeout bounds the write-through to the mirror so a slow store
// never stalls request handling for long.
const saveTimeout = 2 * time.Second

// Manager owns one cart per session for the lifetime of the process. On
// first access a session's cart is restored from the mirror (best-effort)
// and wired with a write-through observer that saves every mutation back.
type Manager struct {
	store Store
	log   *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session pairs a cart with a once guarding its restore, so concurrent
// first requests for the same session all wait for the restore instead
// of racing an empty cart against it.
type session struct {
	restore sync.Once
	cart    *cart.Cart
}

// NewManager returns a manager mirroring carts into the given store.
func NewManager(store Store, log *logrus.Logger) *Manager {
	return &Manager{
		store:    store,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// Cart returns the session's cart, creating and restoring it on first
// access. Restore failures are logged and downgraded to an empty cart.
// The cart is handed out only after the restore has run.
func (m *Manager) Cart(ctx context.Context, sessionID string) *cart.Cart {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		sess = &session{cart: cart.New()}
		m.sessions[sessionID] = sess
	}
	m.mu.Unlock()

	sess.restore.Do(func() {
		lines, err := m.store.Load(ctx, sessionID)
		if err != nil {
			m.log.WithField("session_id", sessionID).WithError(err).
				Warn("could not restore saved cart, starting empty")
		} else if len(lines) > 0 {
			sess.cart.Restore(lines)
		}

		sess.cart.Subscribe(func(s cart.Snapshot) {
			saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if err := m.store.Save(saveCtx, sessionID, s.Lines); err != nil {
				m.log.WithField("session_id", sessionID).WithError(err).
					Warn("could not save cart")
			}
		})
	})
	return sess.cart
}

// Ping reports whether the backing mirror is reachable.
func (m *Manager) Ping(ctx context.Context) bool {
	return m.store.Ping(ctx)
}
