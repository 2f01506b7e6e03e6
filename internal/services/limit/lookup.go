// Package limit debounces lookups that follow keystrokes: the remaining
// limit check on amount inputs and the recipient search in send money.
// Only the newest request reaches the backend, and a response that arrives
// after a newer request was issued is dropped.
package limit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a caller whose request was replaced by a
// newer one before its response could be used.
var ErrSuperseded = errors.New("superseded by a newer request")

type FetchFunc[Q, R any] func(ctx context.Context, q Q) (R, error)

type Result[Q, R any] struct {
	Seq   uint64
	Query Q
	Value R
	Err   error
}

type Lookup[Q, R any] struct {
	debounce *Debouncer

	mu      sync.Mutex
	seq     uint64
	waiters map[uint64]chan Result[Q, R]
}

func newLookup[Q, R any](wait time.Duration) *Lookup[Q, R] {
	return &Lookup[Q, R]{
		debounce: NewDebouncer(wait),
		waiters:  make(map[uint64]chan Result[Q, R]),
	}
}

// AwaitWith issues a debounced request and blocks until its result is known.
// Callers superseded by a newer request get ErrSuperseded. fetch is bound to
// the caller, so the request that fires reports through the latest caller's
// client.
func (l *Lookup[Q, R]) AwaitWith(ctx context.Context, q Q, fetch FetchFunc[Q, R]) (Result[Q, R], error) {
	ch := make(chan Result[Q, R], 1)

	l.mu.Lock()
	l.seq++
	seq := l.seq
	for s, w := range l.waiters {
		w <- Result[Q, R]{Seq: s, Err: ErrSuperseded}
		delete(l.waiters, s)
	}
	l.waiters[seq] = ch
	l.mu.Unlock()

	l.debounce.Trigger(func() { l.run(ctx, seq, q, fetch) })

	select {
	case res := <-ch:
		return res, res.Err
	case <-ctx.Done():
		l.mu.Lock()
		delete(l.waiters, seq)
		l.mu.Unlock()
		return Result[Q, R]{Seq: seq, Query: q}, ctx.Err()
	}
}

func (l *Lookup[Q, R]) run(ctx context.Context, seq uint64, q Q, fetch FetchFunc[Q, R]) {
	value, err := fetch(ctx, q)
	l.deliver(Result[Q, R]{Seq: seq, Query: q, Value: value, Err: err})
}

// deliver stores res unless a newer request was issued after it.
func (l *Lookup[Q, R]) deliver(res Result[Q, R]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if res.Seq != l.seq {
		return false
	}
	if w, ok := l.waiters[res.Seq]; ok {
		w <- res
		delete(l.waiters, res.Seq)
	}
	return true
}

func (l *Lookup[Q, R]) Stop() {
	l.debounce.Stop()
}
