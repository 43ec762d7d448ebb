package query

import (
	"github.com/go-drift/livequery/pkg/live"
)

// Extractor derives zero or more collection items from a matched node.
// A node that contributes several items forms one group in the committed
// results, so item order follows match order then extraction order.
type Extractor[T any] func(Node) []T

// NodeExtractor is the identity extractor for Node-typed bindings.
func NodeExtractor(n Node) []Node {
	return []Node{n}
}

// Binding ties a live collection to the finder that repopulates it.
// The binding owns the collection: it is the only party that calls the
// collection's privileged operations.
type Binding[T any] struct {
	name       string
	collection *live.Collection[T]
	finder     Finder
	extract    Extractor[T]
	equal      func(a, b T) bool
}

// NewBinding creates a binding that refreshes collection from finder
// matches through extract. The name is used in diagnostics only.
func NewBinding[T any](name string, collection *live.Collection[T], finder Finder, extract Extractor[T]) *Binding[T] {
	return &Binding[T]{
		name:       name,
		collection: collection,
		finder:     finder,
		extract:    extract,
	}
}

// SetEquality installs an item equality function. When set, a refresh
// that produces a snapshot value-identical to the previous one skips the
// subscriber notification. Without it every refresh notifies.
func (b *Binding[T]) SetEquality(fn func(a, b T) bool) {
	b.equal = fn
}

// Name returns the binding's diagnostic name.
func (b *Binding[T]) Name() string {
	return b.name
}

// Collection returns the owner handle of the bound collection.
func (b *Binding[T]) Collection() *live.Collection[T] {
	return b.collection
}

// View returns the consumer handle of the bound collection.
func (b *Binding[T]) View() live.View[T] {
	return b.collection.View()
}

// MarkStale flags the bound collection as outdated.
func (b *Binding[T]) MarkStale() {
	b.collection.MarkStale()
}

// Stale reports whether the bound collection is flagged outdated.
func (b *Binding[T]) Stale() bool {
	return b.collection.IsStale()
}

// Refresh re-evaluates the finder against root, commits the extracted
// matches as the collection's new snapshot, and notifies subscribers.
// Returns true if subscribers were notified; false when the equality
// function suppressed an identical snapshot.
func (b *Binding[T]) Refresh(root Node) bool {
	matches := b.finder.Evaluate(root)
	groups := make([]live.Result[T], 0, len(matches))
	for _, match := range matches {
		groups = append(groups, live.FromSlice(b.extract(match)))
	}

	var previous []T
	if b.equal != nil {
		previous = b.collection.ToSlice()
	}

	b.collection.Reset(groups...)

	if b.equal != nil && sameItems(previous, b.collection.ToSlice(), b.equal) {
		return false
	}
	b.collection.NotifyChanges()
	return true
}

func sameItems[T any](a, b []T, equal func(a, b T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
