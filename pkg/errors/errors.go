// Package errors provides structured error handling for the livequery framework.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindEmpty indicates a read against an empty collection snapshot.
	KindEmpty
	// KindMalformed indicates query results that violate the nesting contract.
	KindMalformed
	// KindSubscriber indicates a failure inside a change subscriber callback.
	KindSubscriber
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a manifest or project configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMalformed:
		return "malformed"
	case KindSubscriber:
		return "subscriber"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// QueryError represents a structured error in the livequery framework.
type QueryError struct {
	// Op is the operation that failed (e.g., "query.Registry.Flush").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Query is the query binding name, if applicable.
	Query string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *QueryError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s [%s] query=%s: %v", e.Op, e.Kind, e.Query, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// EmptyCollectionError is returned by First and Last when the current
// snapshot holds no items. Both accessors use the same policy: an error
// return, never a silent zero value.
type EmptyCollectionError struct {
	// Op is the accessor that failed (e.g., "live.Collection.First").
	Op string
}

func (e *EmptyCollectionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: collection is empty", e.Op)
	}
	return "collection is empty"
}

// Is reports whether target is also an EmptyCollectionError, so callers can
// match with errors.Is regardless of which accessor produced the error.
func (e *EmptyCollectionError) Is(target error) bool {
	_, ok := target.(*EmptyCollectionError)
	return ok
}

// MalformedResultError reports query results that fall outside the
// documented nesting contract. The typed Result tree makes this
// unreachable for static bindings; dynamic adapters that accept untyped
// values report it when a leaf has the wrong type.
type MalformedResultError struct {
	// Op is the operation that received the results.
	Op string
	// Got is the offending value.
	Got any
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("%s: malformed query result: got %T", e.Op, e.Got)
}

// SubscriberError represents a recovered panic inside a change subscriber.
// Subscriber failures are isolated per subscriber during notification
// fan-out and reported here rather than silently swallowed.
type SubscriberError struct {
	// Op is the notification operation (e.g., "observe.Stream.Emit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *SubscriberError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in subscriber during %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic in subscriber: %v", e.Value)
}

// ErrorHandler receives errors reported by the livequery framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *QueryError)
	// HandleSubscriberError is called when a subscriber callback panics.
	HandleSubscriberError(err *SubscriberError)
}
