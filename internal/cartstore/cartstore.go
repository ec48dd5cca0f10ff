// Package cartstore mirrors cart contents to a backing store so a session
// survives a reload. The mirror is best-effort: callers log failures and
// carry on with an empty cart, they never surface storage errors to the
// customer.
package cartstore

import (
	"context"

	"github.com/vxxious/aunty-burger/internal/cart"
)

// Store persists cart lines keyed by session id.
type Store interface {
	// Load returns the saved lines for a session. A session with no saved
	// cart yields an empty slice, not an error.
	Load(ctx context.Context, sessionID string) ([]cart.Line, error)

	// Save replaces the saved lines for a session. Saving an empty slice
	// clears the saved cart.
	Save(ctx context.Context, sessionID string, lines []cart.Line) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) bool
}
