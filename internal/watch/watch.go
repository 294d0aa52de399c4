// Package watch turns "something changed" signals into a stream of full
// snapshots for any number of subscribers.
//
// A Hub reloads the complete current value through its Loader on every
// Publish and offers it to each subscriber. Each subscriber holds at most one
// pending update: a newer snapshot replaces an unread older one, so slow
// consumers skip intermediate versions but always end up with the latest
// committed state. Versions are strictly increasing in delivery order.
package watch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Loader reads the complete current value from the backing store.
type Loader[T any] func(ctx context.Context) (T, error)

// Update is one delivered snapshot.
type Update[T any] struct {
	Version uint64
	Value   T
}

type Hub[T any] struct {
	mu      sync.Mutex
	load    Loader[T]
	version uint64
	subs    map[*Subscription[T]]struct{}
}

func NewHub[T any](load Loader[T]) *Hub[T] {
	return &Hub[T]{
		load: load,
		subs: make(map[*Subscription[T]]struct{}),
	}
}

// Publish reloads the current value and offers it to every subscriber.
// Publishes are serialized, so the value loaded by the last Publish to run
// reflects every change committed before it was called.
func (h *Hub[T]) Publish(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) == 0 {
		return nil
	}

	v, err := h.load(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	h.version++
	u := Update[T]{Version: h.version, Value: v}

	for s := range h.subs {
		s.offer(u)
	}

	return nil
}

// Subscribe registers a subscriber whose first update is the current value.
// The subscription ends when ctx is cancelled or Close is called.
func (h *Hub[T]) Subscribe(ctx context.Context) (*Subscription[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, err := h.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	s := &Subscription[T]{
		hub:  h,
		ch:   make(chan Update[T], 1),
		done: make(chan struct{}),
	}
	s.offer(Update[T]{Version: h.version, Value: v})
	h.subs[s] = struct{}{}

	s.mu.Lock()
	s.stop = context.AfterFunc(ctx, s.Close)
	s.mu.Unlock()

	return s, nil
}

// Subscribers returns the number of live subscriptions.
func (h *Hub[T]) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}

func (h *Hub[T]) remove(s *Subscription[T]) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

// Subscription is a live, non-restartable stream of snapshots.
type Subscription[T any] struct {
	hub  *Hub[T]
	ch   chan Update[T]
	done chan struct{}
	stop func() bool

	mu     sync.Mutex
	closed atomic.Bool
	once   sync.Once
}

// Updates yields snapshots in commit order. The channel is closed after Close.
func (s *Subscription[T]) Updates() <-chan Update[T] {
	return s.ch
}

// Done is closed once the subscription has been torn down.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Closed reports whether the subscription was torn down.
func (s *Subscription[T]) Closed() bool {
	return s.closed.Load()
}

// Deliver applies u with fn unless the subscription was closed after u was
// received. It reports whether fn ran.
func (s *Subscription[T]) Deliver(u Update[T], fn func(T)) bool {
	if s.closed.Load() {
		return false
	}

	fn(u.Value)

	return true
}

// Close tears the subscription down. It is safe to call more than once and
// from any goroutine.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed.Store(true)

		select {
		case <-s.ch:
		default:
		}

		close(s.ch)
		close(s.done)
		stop := s.stop
		s.mu.Unlock()

		s.hub.remove(s)

		if stop != nil {
			stop()
		}
	})
}

func (s *Subscription[T]) offer(u Update[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return
	}

	// Drop the unread older snapshot; the buffer holds one.
	select {
	case <-s.ch:
	default:
	}

	s.ch <- u
}
