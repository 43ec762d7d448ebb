package query

import (
	"fmt"
	"sync"

	"github.com/go-drift/livequery/pkg/errors"
)

// defaultMaxFlushPasses bounds refresh-during-flush cascades.
const defaultMaxFlushPasses = 8

// Refreshable is the scheduler-facing surface of a query binding.
type Refreshable interface {
	// Refresh recomputes the binding against root.
	// Returns true if subscribers were notified.
	Refresh(root Node) bool
	// MarkStale flags the binding's collection as outdated.
	MarkStale()
	// Stale reports whether a refresh is owed.
	Stale() bool
}

// Options configures a Registry.
type Options struct {
	// MaxFlushPasses bounds how many times Flush re-runs when refreshes
	// invalidate further bindings. Zero means the default (8).
	MaxFlushPasses int

	// OnNeedsFlush is called when a binding is scheduled while none were
	// pending, signalling the host that a flush should be driven. It fires
	// once per quiescent period.
	OnNeedsFlush func()
}

// Registry tracks stale query bindings and refreshes them on demand.
// Fresh bindings are skipped entirely, so a flush after an update pass
// only pays for the queries whose tracked state actually changed.
type Registry struct {
	mu         sync.Mutex
	bindings   []Refreshable
	pending    []Refreshable
	pendingSet map[Refreshable]bool
	opts       Options
}

// NewRegistry creates a registry with the given options.
func NewRegistry(opts Options) *Registry {
	if opts.MaxFlushPasses <= 0 {
		opts.MaxFlushPasses = defaultMaxFlushPasses
	}
	return &Registry{
		pendingSet: make(map[Refreshable]bool),
		opts:       opts,
	}
}

// Register adds a binding to the registry. Registered bindings are
// covered by InvalidateAll.
func (r *Registry) Register(b Refreshable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
}

// Unregister removes a binding from the registry and from the pending
// set. The binding's collection is left untouched.
func (r *Registry) Unregister(b Refreshable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.bindings {
		if existing == b {
			r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
			break
		}
	}
	if r.pendingSet[b] {
		delete(r.pendingSet, b)
		for i, existing := range r.pending {
			if existing == b {
				r.pending = append(r.pending[:i], r.pending[i+1:]...)
				break
			}
		}
	}
}

// Invalidate marks a binding stale and schedules it for the next flush.
func (r *Registry) Invalidate(b Refreshable) {
	b.MarkStale()

	wake := func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.pendingSet[b] {
			return false
		}
		wasIdle := len(r.pending) == 0
		r.pendingSet[b] = true
		r.pending = append(r.pending, b)
		return wasIdle
	}()

	if wake && r.opts.OnNeedsFlush != nil {
		r.opts.OnNeedsFlush()
	}
}

// InvalidateAll marks every registered binding stale and schedules it.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	bindings := make([]Refreshable, len(r.bindings))
	copy(bindings, r.bindings)
	r.mu.Unlock()

	for _, b := range bindings {
		r.Invalidate(b)
	}
}

// NeedsFlush returns true if any binding is scheduled for refresh.
func (r *Registry) NeedsFlush() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending) > 0
}

// Flush refreshes all scheduled bindings against root, in scheduling
// order. Bindings whose staleness was already cleared are skipped.
// Bindings invalidated by a refresh are picked up in a subsequent pass,
// bounded by MaxFlushPasses; exceeding the bound is reported through the
// global error handler and the remaining work stays pending.
func (r *Registry) Flush(root Node) {
	for pass := 0; pass < r.opts.MaxFlushPasses; pass++ {
		r.mu.Lock()
		if len(r.pending) == 0 {
			r.mu.Unlock()
			return
		}
		pending := r.pending
		r.pending = nil
		clear(r.pendingSet)
		r.mu.Unlock()

		for _, b := range pending {
			if !b.Stale() {
				continue
			}
			b.Refresh(root)
		}
	}

	if r.NeedsFlush() {
		errors.Report(&errors.QueryError{
			Op:   "query.Registry.Flush",
			Kind: errors.KindUnknown,
			Err:  fmt.Errorf("flush did not settle after %d passes", r.opts.MaxFlushPasses),
		})
	}
}
