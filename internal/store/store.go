// Package store holds shared client state (wallet, cart, wishlist, cached
// storefront data) behind observable stores. Each store has one writer
// goroutine that applies updates in order; readers only ever see complete
// snapshots.
package store

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("store is closed")

// Updater returns the next state. It must not modify its argument in place;
// slices and maps are replaced, not mutated.
type Updater[T any] func(T) (T, error)

type request[T any] struct {
	fn    Updater[T]
	reply chan result[T]
}

type result[T any] struct {
	state T
	err   error
}

type Store[T any] struct {
	updates chan request[T]
	done    chan struct{}
	once    sync.Once
	hooks   []func(T)

	mu    sync.RWMutex
	state T

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan T
}

type Option[T any] func(*Store[T])

// WithHook runs fn on the writer goroutine after every applied update.
func WithHook[T any](fn func(T)) Option[T] {
	return func(s *Store[T]) { s.hooks = append(s.hooks, fn) }
}

func New[T any](initial T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		updates: make(chan request[T]),
		done:    make(chan struct{}),
		state:   initial,
		subs:    make(map[int]chan T),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.loop()
	return s
}

func (s *Store[T]) loop() {
	for {
		select {
		case req := <-s.updates:
			s.mu.RLock()
			current := s.state
			s.mu.RUnlock()

			if s.closed() {
				req.reply <- result[T]{state: current, err: ErrClosed}
				return
			}

			next, err := req.fn(current)
			if err != nil {
				req.reply <- result[T]{state: current, err: err}
				continue
			}

			s.mu.Lock()
			s.state = next
			s.mu.Unlock()

			for _, hook := range s.hooks {
				hook(next)
			}
			s.publish(next)
			req.reply <- result[T]{state: next}
		case <-s.done:
			return
		}
	}
}

// Update hands fn to the writer and waits for the new state. When fn
// fails the state is left unchanged.
func (s *Store[T]) Update(fn Updater[T]) (T, error) {
	if s.closed() {
		return s.Get(), ErrClosed
	}
	req := request[T]{fn: fn, reply: make(chan result[T], 1)}
	select {
	case s.updates <- req:
	case <-s.done:
		return s.Get(), ErrClosed
	}
	res := <-req.reply
	return res.state, res.err
}

// Set replaces the state.
func (s *Store[T]) Set(v T) (T, error) {
	return s.Update(func(T) (T, error) { return v, nil })
}

func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe delivers every new state. A subscriber that falls behind only
// misses intermediate states, never the latest one.
func (s *Store[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store[T]) publish(v T) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

func (s *Store[T]) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close stops the writer and closes every subscription.
func (s *Store[T]) Close() {
	s.once.Do(func() {
		close(s.done)
		s.subMu.Lock()
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
		s.subMu.Unlock()
	})
}
