// Package session holds the server-side session registry: the only shared
// mutable state of the service. Every Store implementation is safe for
// concurrent use.
package session

import (
	"context"
	"time"

	"account_ledger/internal/models"
)

// Store keeps sessions keyed by their opaque id.
type Store interface {
	// Save inserts or replaces s.
	Save(ctx context.Context, s models.Session) error
	// Get returns the session with id. ok is false when it does not exist.
	Get(ctx context.Context, id string) (s models.Session, ok bool, err error)
	// Delete removes id and reports whether a session was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteExpired removes every session expired at now and returns how many.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
