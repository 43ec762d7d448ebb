// Package query provides the framework side of live view queries: the
// finder engine that locates matching nodes in a tree and the registry
// that schedules collection refreshes.
//
// A Binding ties a finder and an extractor to a live.Collection. The
// Registry tracks which bindings are stale and refreshes exactly those on
// the next Flush, so unchanged queries cost nothing. Package live never
// imports this package; the collection only sees committed snapshots and
// notifications.
//
// # Typical wiring
//
//	buttons := live.NewCollection[query.Node]()
//	binding := query.NewBinding("buttons", buttons,
//	    query.ByType[Button](), query.NodeExtractor)
//
//	registry := query.NewRegistry(query.Options{})
//	registry.Register(binding)
//
//	// After tracked state changes:
//	registry.Invalidate(binding)
//	registry.Flush(root)
package query
