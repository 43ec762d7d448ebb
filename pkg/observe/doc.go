// Package observe provides the push-based notification primitives used by
// livequery collections.
//
// Stream is a typed broadcast channel: subscribers register callbacks and
// receive every subsequent emit synchronously, in registration order. There
// is no replay; a subscriber only sees emits that happen after it
// subscribes. Closing a stream releases all subscriber references and makes
// further subscribes and emits no-ops.
//
// Notifier is the value-less variant for plain "something happened" events.
//
// Delivery is synchronous and single-threaded from the emitter's point of
// view. A subscriber that panics is isolated: the panic is reported through
// the global handler in package errors and the remaining subscribers still
// run.
package observe
