package observe

import (
	"sync"

	"github.com/go-drift/livequery/pkg/errors"
)

// Subscribable is the consumer-facing side of a Stream: subscribe and
// unsubscribe only, no emitting.
type Subscribable[T any] interface {
	// Subscribe registers a callback for future emits.
	// Returns an unsubscribe function. Unsubscribing is idempotent.
	Subscribe(fn func(T)) func()
	// SubscriberCount returns the number of active subscribers.
	SubscriberCount() int
}

// subscriber is one registered callback slot.
type subscriber[T any] struct {
	fn func(T)
}

// Stream is a typed broadcast channel with synchronous, in-order delivery.
//
// The zero value is ready to use. Streams are safe for concurrent
// Subscribe/unsubscribe, but emits are expected to come from the single
// logical thread that owns the emitting side.
type Stream[T any] struct {
	mu          sync.Mutex
	subscribers []*subscriber[T]
	closed      bool
}

// NewStream creates an empty open stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Subscribe registers a callback that receives every subsequent emit.
// Returns an unsubscribe function. Past emits are not replayed.
// Subscribing to a closed stream is a no-op.
func (s *Stream[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	sub := &subscriber[T]{fn: fn}
	s.subscribers = append(s.subscribers, sub)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, existing := range s.subscribers {
			if existing == sub {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers value to every subscriber registered at call time, in
// registration order. A panicking subscriber is reported and does not
// prevent later subscribers from running. Emitting on a closed stream is
// a no-op.
func (s *Stream[T]) Emit(value T) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	active := make([]func(T), len(s.subscribers))
	for i, sub := range s.subscribers {
		active[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range active {
		invoke(fn, value)
	}
}

// invoke runs one subscriber callback with panic isolation.
func invoke[T any](fn func(T), value T) {
	defer errors.RecoverSubscriber("observe.Stream.Emit")
	fn(value)
}

// Close releases all subscriber references and marks the stream closed.
// Further Subscribe and Emit calls are no-ops. Close is idempotent.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subscribers = nil
}

// SubscriberCount returns the number of active subscribers.
func (s *Stream[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// IsClosed returns true if the stream has been closed.
func (s *Stream[T]) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
