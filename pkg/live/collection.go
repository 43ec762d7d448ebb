package live

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-drift/livequery/pkg/errors"
	"github.com/go-drift/livequery/pkg/observe"
)

// View is the read-only handle to a live collection. All operations are
// pure reads of the current snapshot: no side effects, no blocking, no
// recomputation.
type View[T any] interface {
	// Len returns the number of items in the current snapshot.
	Len() int

	// First returns the first item, or *errors.EmptyCollectionError if the
	// snapshot is empty.
	First() (T, error)

	// Last returns the last item, or *errors.EmptyCollectionError if the
	// snapshot is empty.
	Last() (T, error)

	// ForEach calls fn(item, index) for every item in snapshot order.
	// fn should be free of side effects on the collection; panics propagate
	// to the caller.
	ForEach(fn func(item T, index int))

	// Filter returns a new slice of the items for which fn returns true,
	// in snapshot order.
	Filter(fn func(item T, index int) bool) []T

	// ToSlice returns an independent copy of the current snapshot.
	// Mutating the returned slice never affects the collection.
	ToSlice() []T

	// All returns an iterator over the snapshot current at iteration start.
	// A fresh range always begins at index 0.
	All() iter.Seq[T]

	// IsStale reports whether the snapshot is known to be outdated relative
	// to the tracked state.
	IsStale() bool

	// Changes returns the subscribable change channel. Subscribers receive
	// the current snapshot on every NotifyChanges; there is no replay.
	Changes() observe.Subscribable[[]T]

	fmt.Stringer
}

// Collection is the owner handle of a live query collection. The owner
// (normally the query scheduler) commits snapshots with Reset, flags
// pending recomputation with MarkStale, and fans updates out with
// NotifyChanges. Everything else reads the last committed snapshot.
//
// A new collection is empty and stale until its first Reset.
type Collection[T any] struct {
	snapshot []T
	stale    bool
	disposed bool
	changes  *observe.Stream[[]T]
}

// NewCollection creates an empty, stale collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{
		stale:   true,
		changes: observe.NewStream[[]T](),
	}
}

// View returns the read-only handle for consumers.
func (c *Collection[T]) View() View[T] {
	return c
}

// Reset flattens results to arbitrary depth (depth-first, left-to-right)
// and commits them as the new snapshot. The replacement is a single
// reference swap: readers observe the old snapshot or the new one in
// full, never a mix. Reset clears the staleness flag and does not notify
// subscribers; call NotifyChanges separately once all collections for the
// pass are updated.
func (c *Collection[T]) Reset(results ...Result[T]) {
	if c.disposed {
		return
	}
	c.snapshot = Flatten(results...)
	c.stale = false
}

// MarkStale flags the snapshot as outdated. It does not alter contents
// and does not notify. Only the owner calls this; readers never flip the
// flag back.
func (c *Collection[T]) MarkStale() {
	if c.disposed {
		return
	}
	c.stale = true
}

// NotifyChanges delivers the current snapshot to every subscriber
// registered at call time, synchronously and in registration order.
// Subscriber panics are isolated per subscriber and reported through the
// global handler in package errors; they never corrupt the snapshot or
// the staleness flag. Calling NotifyChanges without an intervening Reset
// re-delivers the existing snapshot.
func (c *Collection[T]) NotifyChanges() {
	if c.disposed {
		return
	}
	c.changes.Emit(c.snapshot)
}

// Dispose tears the collection down: the change channel is closed and all
// subscriber references released. The last snapshot stays readable, but
// no further mutation or notification occurs. Dispose is idempotent.
func (c *Collection[T]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.changes.Close()
}

// IsDisposed returns true if the collection has been torn down.
func (c *Collection[T]) IsDisposed() bool {
	return c.disposed
}

// Len returns the number of items in the current snapshot.
func (c *Collection[T]) Len() int {
	return len(c.snapshot)
}

// First returns the first item of the current snapshot.
func (c *Collection[T]) First() (T, error) {
	if len(c.snapshot) == 0 {
		var zero T
		return zero, &errors.EmptyCollectionError{Op: "live.Collection.First"}
	}
	return c.snapshot[0], nil
}

// Last returns the last item of the current snapshot.
func (c *Collection[T]) Last() (T, error) {
	if len(c.snapshot) == 0 {
		var zero T
		return zero, &errors.EmptyCollectionError{Op: "live.Collection.Last"}
	}
	return c.snapshot[len(c.snapshot)-1], nil
}

// ForEach calls fn(item, index) for every item in snapshot order.
func (c *Collection[T]) ForEach(fn func(item T, index int)) {
	for i, item := range c.snapshot {
		fn(item, i)
	}
}

// Filter returns the items for which fn returns true, in snapshot order.
func (c *Collection[T]) Filter(fn func(item T, index int) bool) []T {
	var out []T
	for i, item := range c.snapshot {
		if fn(item, i) {
			out = append(out, item)
		}
	}
	return out
}

// ToSlice returns an independent copy of the current snapshot.
func (c *Collection[T]) ToSlice() []T {
	return slices.Clone(c.snapshot)
}

// All returns an iterator over the snapshot current at iteration start.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range c.snapshot {
			if !yield(item) {
				return
			}
		}
	}
}

// IsStale reports whether the snapshot is known to be outdated.
func (c *Collection[T]) IsStale() bool {
	return c.stale
}

// Changes returns the subscribable change channel.
func (c *Collection[T]) Changes() observe.Subscribable[[]T] {
	return c.changes
}

// String returns a human-readable rendering of the current contents.
func (c *Collection[T]) String() string {
	if c.stale {
		return fmt.Sprintf("live.Collection(stale)%v", c.snapshot)
	}
	return fmt.Sprintf("live.Collection%v", c.snapshot)
}
