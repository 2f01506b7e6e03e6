package limit

import (
	"sync"
	"time"
)

// Registry keeps one lookup per browser session and feature so that
// keystrokes from the same input share a debounce window.
type Registry[Q, R any] struct {
	mu      sync.Mutex
	wait    time.Duration
	idle    time.Duration
	entries map[string]*entry[Q, R]
	now     func() time.Time
}

type entry[Q, R any] struct {
	lookup   *Lookup[Q, R]
	lastUsed time.Time
}

func NewRegistry[Q, R any](wait, idle time.Duration) *Registry[Q, R] {
	return &Registry[Q, R]{
		wait:    wait,
		idle:    idle,
		entries: make(map[string]*entry[Q, R]),
		now:     time.Now,
	}
}

// Get returns the lookup for key, creating it on first use. Callers use
// AwaitWith on it. Entries idle for longer than the idle window are dropped
// on the way.
func (r *Registry[Q, R]) Get(key string) *Lookup[Q, R] {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.entries {
		if k != key && now.Sub(e.lastUsed) > r.idle {
			e.lookup.Stop()
			delete(r.entries, k)
		}
	}

	e, ok := r.entries[key]
	if !ok {
		e = &entry[Q, R]{lookup: newLookup[Q, R](r.wait)}
		r.entries[key] = e
	}
	e.lastUsed = now
	return e.lookup
}

func (r *Registry[Q, R]) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
