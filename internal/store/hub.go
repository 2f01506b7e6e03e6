package store

import (
	"context"
	"sync"
	"time"
)

// Closer is any store the hub can retire.
type Closer interface {
	Close()
}

// Hub keeps one live store per browser session and closes the ones that
// went idle.
type Hub[S Closer] struct {
	mu     sync.Mutex
	open   func(ctx context.Context, sid string) (S, error)
	idle   time.Duration
	now    func() time.Time
	stores map[string]*hubEntry[S]
}

type hubEntry[S Closer] struct {
	store    S
	lastUsed time.Time
}

func NewHub[S Closer](idle time.Duration, open func(ctx context.Context, sid string) (S, error)) *Hub[S] {
	return &Hub[S]{
		open:   open,
		idle:   idle,
		now:    time.Now,
		stores: make(map[string]*hubEntry[S]),
	}
}

func (h *Hub[S]) Get(ctx context.Context, sid string) (S, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	for id, e := range h.stores {
		if id != sid && now.Sub(e.lastUsed) > h.idle {
			e.store.Close()
			delete(h.stores, id)
		}
	}

	if e, ok := h.stores[sid]; ok {
		e.lastUsed = now
		return e.store, nil
	}
	s, err := h.open(ctx, sid)
	if err != nil {
		var zero S
		return zero, err
	}
	h.stores[sid] = &hubEntry[S]{store: s, lastUsed: now}
	return s, nil
}

// Drop closes and forgets the store of one session.
func (h *Hub[S]) Drop(sid string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.stores[sid]; ok {
		e.store.Close()
		delete(h.stores, sid)
	}
}

func (h *Hub[S]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, e := range h.stores {
		e.store.Close()
		delete(h.stores, id)
	}
}
