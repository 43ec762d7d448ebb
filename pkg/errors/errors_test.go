package errors

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestQueryErrorString(t *testing.T) {
	err := &QueryError{
		Op:   "test.operation",
		Kind: KindMalformed,
		Err:  &MalformedResultError{Op: "test.operation", Got: 42},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
}

func TestQueryErrorWithQuery(t *testing.T) {
	err := &QueryError{
		Op:    "query.Registry.Flush",
		Kind:  KindSubscriber,
		Query: "buttons",
		Err:   &SubscriberError{Value: "boom"},
	}
	got := err.Error()
	want := "query=buttons"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindEmpty, "empty"},
		{KindMalformed, "malformed"},
		{KindSubscriber, "subscriber"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEmptyCollectionErrorString(t *testing.T) {
	err := &EmptyCollectionError{Op: "live.Collection.First"}
	got := err.Error()
	want := "live.Collection.First: collection is empty"
	if got != want {
		t.Errorf("EmptyCollectionError.Error() = %q, want %q", got, want)
	}
}

func TestEmptyCollectionErrorIs(t *testing.T) {
	first := &EmptyCollectionError{Op: "live.Collection.First"}
	last := &EmptyCollectionError{Op: "live.Collection.Last"}
	if !stderrors.Is(first, last) {
		t.Error("EmptyCollectionError instances should match with errors.Is")
	}
	if stderrors.Is(first, stderrors.New("other")) {
		t.Error("EmptyCollectionError should not match unrelated errors")
	}
}

func TestSubscriberErrorString(t *testing.T) {
	err := &SubscriberError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in subscriber: test panic"
	if got != want {
		t.Errorf("SubscriberError.Error() = %q, want %q", got, want)
	}
}

func TestSubscriberErrorStringWithOp(t *testing.T) {
	err := &SubscriberError{
		Op:        "observe.Stream.Emit",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in subscriber during observe.Stream.Emit: test panic"
	if got != want {
		t.Errorf("SubscriberError.Error() = %q, want %q", got, want)
	}
}

func TestMalformedResultErrorString(t *testing.T) {
	err := &MalformedResultError{
		Op:  "live.ResultOf",
		Got: 123,
	}
	got := err.Error()
	if !strings.Contains(got, "int") {
		t.Errorf("error string %q should name the offending type", got)
	}
}

// testHandler captures reported errors for assertions.
type testHandler struct {
	onError      func(*QueryError)
	onSubscriber func(*SubscriberError)
}

func (h *testHandler) HandleError(err *QueryError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandleSubscriberError(err *SubscriberError) {
	if h.onSubscriber != nil {
		h.onSubscriber(err)
	}
}

func TestReport(t *testing.T) {
	var captured *QueryError
	SetHandler(&testHandler{
		onError: func(err *QueryError) { captured = err },
	})
	defer SetHandler(nil)

	Report(&QueryError{Op: "test.op", Kind: KindConfig, Err: stderrors.New("bad manifest")})

	if captured == nil {
		t.Fatal("expected error to reach handler")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("Report should fill in a zero timestamp")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	SetHandler(&testHandler{
		onError: func(*QueryError) { called = true },
	})
	defer SetHandler(nil)

	Report(nil)

	if called {
		t.Error("nil error should not reach handler")
	}
}

func TestRecoverSubscriber(t *testing.T) {
	var captured *SubscriberError
	SetHandler(&testHandler{
		onSubscriber: func(err *SubscriberError) { captured = err },
	})
	defer SetHandler(nil)

	func() {
		defer RecoverSubscriber("observe.Stream.Emit")
		panic("subscriber exploded")
	}()

	if captured == nil {
		t.Fatal("expected panic to be reported")
	}
	if captured.Op != "observe.Stream.Emit" {
		t.Errorf("Op = %q, want %q", captured.Op, "observe.Stream.Emit")
	}
	if captured.Value != "subscriber exploded" {
		t.Errorf("Value = %v, want %q", captured.Value, "subscriber exploded")
	}
	if captured.StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&testHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("DefaultHandler = %T, want *LogHandler", DefaultHandler)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, ":") {
		t.Errorf("stack trace should contain file:line entries, got:\n%s", stack)
	}
}
