// Package game owns the mutable state graph for one play session. Every
// engine operation runs inside the session lock for its full
// validate-then-mutate span, so the all-or-nothing discipline of the
// compound operations survives concurrent HTTP callers.
package game

import (
	"encoding/json"
	"fmt"

	"sync"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/utils"
)

// Session couples the state graph with its lock and randomness source.
// Construct one per game world; services hold a reference and never see
// the state outside a callback.
type Session struct {
	mu    sync.Mutex
	state *domain.GameState
	rnd   func() float64
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects a deterministic randomness source. rnd must return
// values in [0, 1). Tests use this to pin rolls.
func WithRand(rnd func() float64) Option {
	return func(s *Session) { s.rnd = rnd }
}

// NewSession wraps a state graph. A nil state starts an empty world
// with built-in defaults.
func NewSession(state *domain.GameState, opts ...Option) *Session {
	if state == nil {
		state = domain.NewGameState()
	}
	s := &Session{
		state: state,
		rnd:   utils.RandomFloat,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update runs fn with exclusive access to the state. An error from fn
// propagates unchanged; fn is responsible for leaving the state
// untouched on failure (validate before mutating).
func (s *Session) Update(fn func(*domain.GameState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn with exclusive access for reading. The state is shared
// with the session, so fn must not retain or mutate it.
func (s *Session) View(fn func(*domain.GameState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Rand returns one random value in [0, 1). Only call from inside an
// Update or View callback; the source is guarded by the session lock.
func (s *Session) Rand() float64 {
	return s.rnd()
}

// Snapshot returns a deep copy of the state graph for persistence. The
// copy goes through the JSON codec, the same shape the store writes, so
// a snapshot that round-trips here also round-trips on disk.
func (s *Session) Snapshot() (*domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.state)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot state: %w", err)
	}
	copied := domain.NewGameState()
	if err := json.Unmarshal(data, copied); err != nil {
		return nil, fmt.Errorf("failed to rebuild snapshot: %w", err)
	}
	return copied, nil
}

// Replace swaps in a freshly loaded state graph, e.g. after a store
// load. A nil state resets to an empty world.
func (s *Session) Replace(state *domain.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == nil {
		state = domain.NewGameState()
	}
	s.state = state
}
