// Package store persists game state snapshots. Both backends share the
// same versioned JSON document format and the same migration chain, so
// a file save can be imported into Postgres unchanged.
package store

import (
	"context"
	"errors"

	"github.com/lootledger/engine/internal/domain"
)

// CurrentVersion is the save document version this build writes.
const CurrentVersion = 3

// ErrNoSave is returned by Load when no saved state exists yet. Callers
// start a fresh world on it.
var ErrNoSave = errors.New("no saved state")

// Store persists full state-graph snapshots.
type Store interface {
	// Load reads the latest snapshot, migrating older save versions to
	// the current format. Returns ErrNoSave when nothing was saved yet.
	Load(ctx context.Context) (*domain.GameState, error)
	// Save writes a snapshot, replacing any previous one.
	Save(ctx context.Context, state *domain.GameState) error
	// Ping reports whether the backend is reachable and writable.
	Ping(ctx context.Context) error
	Close() error
}
