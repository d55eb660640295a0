package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/game"
)

// Resolver default cache sizing.
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 5 * time.Minute
)

// Resolver maps user-entered item names to canonical catalog names.
// Lookups fold case and memoize hits in an expirable LRU so repeated
// command traffic for the same few item names skips the catalog scan.
type Resolver struct {
	session *game.Session
	cache   *expirable.LRU[string, string]
}

// NewResolver creates a resolver over the session's catalog.
func NewResolver(session *game.Session) *Resolver {
	return &Resolver{
		session: session,
		cache:   expirable.NewLRU[string, string](DefaultCacheSize, nil, DefaultCacheTTL),
	}
}

// ItemName resolves a user-entered name to the catalog's canonical
// display name. Returns false when no such item exists.
func (r *Resolver) ItemName(name string) (string, bool) {
	key := domain.Key(name)
	if canonical, ok := r.cache.Get(key); ok {
		return canonical, true
	}

	var canonical string
	found := false
	_ = r.session.View(func(g *domain.GameState) error {
		if master, ok := g.MasterItem(name); ok {
			canonical = master.Name
			found = true
		}
		return nil
	})
	if found {
		r.cache.Add(key, canonical)
	}
	return canonical, found
}

// Invalidate drops a cached name after a catalog edit.
func (r *Resolver) Invalidate(name string) {
	r.cache.Remove(domain.Key(name))
}

// Purge drops the whole cache, e.g. after a content reload.
func (r *Resolver) Purge() {
	r.cache.Purge()
}
