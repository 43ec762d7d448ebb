// Package live provides the live query collection at the heart of the
// framework's view queries.
//
// A Collection holds an ordered snapshot of matched items that its owner
// (the query scheduler) replaces after each recomputation pass. Consumers
// hold the read-only View and see an immutable snapshot between updates:
// reads never trigger recomputation, and every read reflects the last
// committed snapshot in full.
//
// # Ownership
//
// Mutation is gated behind the owner handle. The owner calls Reset to
// commit a new snapshot, MarkStale when tracked state changed but
// recomputation is deferred, and NotifyChanges to fan the current snapshot
// out to subscribers. Consumers receive a View, which exposes none of
// these. Reset and NotifyChanges are deliberately separate: an owner may
// update several collections before notifying any of them, or skip
// notification entirely when the new snapshot equals the old one.
//
// # Error policy
//
// First and Last return (*errors.EmptyCollectionError) on an empty
// snapshot. Both accessors use the error return, never an absent-value
// sentinel.
//
// # Flattening
//
// Reset accepts a tree of Result values (a single item, or a group of
// nested results). Contents are flattened to arbitrary depth, depth-first
// left-to-right, before the snapshot is committed.
//
// # Concurrency
//
// Collections are NOT thread-safe. Reset, MarkStale, NotifyChanges, and
// Dispose must be called from the single logical thread that owns the
// collection; reads from other goroutines require external
// synchronization. Snapshot replacement is a single reference swap, so a
// cooperative single-threaded scheduler never observes a torn snapshot.
package live
