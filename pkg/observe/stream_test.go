package observe

import (
	"testing"

	"github.com/go-drift/livequery/pkg/errors"
)

func TestStreamDeliversInRegistrationOrder(t *testing.T) {
	s := NewStream[int]()
	var order []string

	s.Subscribe(func(v int) { order = append(order, "first") })
	s.Subscribe(func(v int) { order = append(order, "second") })
	s.Subscribe(func(v int) { order = append(order, "third") })

	s.Emit(1)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %d deliveries, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("delivery %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestStreamEachSubscriberInvokedOncePerEmit(t *testing.T) {
	s := NewStream[string]()
	counts := make(map[string]int)

	s.Subscribe(func(v string) { counts["s1"]++ })
	s.Subscribe(func(v string) { counts["s2"]++ })

	s.Emit("hello")

	if counts["s1"] != 1 || counts["s2"] != 1 {
		t.Errorf("counts = %v, want each subscriber invoked exactly once", counts)
	}
}

func TestStreamUnsubscribe(t *testing.T) {
	s := NewStream[int]()
	called := false

	unsub := s.Subscribe(func(v int) { called = true })
	unsub()
	s.Emit(1)

	if called {
		t.Error("unsubscribed callback should not be invoked")
	}
	if s.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", s.SubscriberCount())
	}
}

func TestStreamUnsubscribeIdempotent(t *testing.T) {
	s := NewStream[int]()
	s.Subscribe(func(int) {})
	unsub := s.Subscribe(func(int) {})

	unsub()
	unsub()

	if s.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", s.SubscriberCount())
	}
}

func TestStreamNoReplay(t *testing.T) {
	s := NewStream[int]()
	s.Emit(1)

	var received []int
	s.Subscribe(func(v int) { received = append(received, v) })

	if len(received) != 0 {
		t.Errorf("late subscriber received %v, want no replay", received)
	}

	s.Emit(2)
	if len(received) != 1 || received[0] != 2 {
		t.Errorf("received = %v, want [2]", received)
	}
}

func TestStreamClose(t *testing.T) {
	s := NewStream[int]()
	called := false
	s.Subscribe(func(int) { called = true })

	s.Close()
	s.Emit(1)

	if called {
		t.Error("subscriber should not fire after Close")
	}
	if !s.IsClosed() {
		t.Error("IsClosed() should be true after Close")
	}
	if s.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0 after Close", s.SubscriberCount())
	}

	// Subscribing after Close is inert.
	unsub := s.Subscribe(func(int) { called = true })
	s.Emit(2)
	unsub()
	if called {
		t.Error("subscriber added after Close should never fire")
	}

	// Close is idempotent.
	s.Close()
}

func TestStreamPanicIsolation(t *testing.T) {
	var reported *errors.SubscriberError
	errors.SetHandler(&captureHandler{
		onSubscriber: func(err *errors.SubscriberError) { reported = err },
	})
	defer errors.SetHandler(nil)

	s := NewStream[int]()
	var after bool
	s.Subscribe(func(int) { panic("bad subscriber") })
	s.Subscribe(func(int) { after = true })

	s.Emit(1)

	if !after {
		t.Error("a panicking subscriber should not prevent later subscribers")
	}
	if reported == nil {
		t.Fatal("subscriber panic should be reported, not swallowed")
	}
	if reported.Value != "bad subscriber" {
		t.Errorf("reported value = %v, want %q", reported.Value, "bad subscriber")
	}
}

func TestStreamNilCallback(t *testing.T) {
	s := NewStream[int]()
	unsub := s.Subscribe(nil)
	unsub()
	if s.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", s.SubscriberCount())
	}
	s.Emit(1)
}

// captureHandler routes reported errors into test assertions.
type captureHandler struct {
	onError      func(*errors.QueryError)
	onSubscriber func(*errors.SubscriberError)
}

func (h *captureHandler) HandleError(err *errors.QueryError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *captureHandler) HandleSubscriberError(err *errors.SubscriberError) {
	if h.onSubscriber != nil {
		h.onSubscriber(err)
	}
}
