package observe

// Notifier broadcasts value-less change events.
// Use it when subscribers only need to know that something happened,
// not what the new state is.
//
// The zero value is ready to use.
type Notifier struct {
	stream Stream[struct{}]
}

// NewNotifier creates an empty open notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers a callback invoked on every Notify.
// Returns an unsubscribe function.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return n.stream.Subscribe(func(struct{}) {
		fn()
	})
}

// Notify invokes all registered listeners in registration order.
func (n *Notifier) Notify() {
	n.stream.Emit(struct{}{})
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return n.stream.SubscriberCount()
}

// Close releases all listener references. Further AddListener and Notify
// calls are no-ops.
func (n *Notifier) Close() {
	n.stream.Close()
}
