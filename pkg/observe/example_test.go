package observe_test

import (
	"fmt"

	"github.com/go-drift/livequery/pkg/observe"
)

// This example shows a typed stream delivering values to subscribers
// in registration order.
func ExampleStream() {
	stream := observe.NewStream[string]()

	unsub := stream.Subscribe(func(v string) {
		fmt.Printf("received: %s\n", v)
	})

	stream.Emit("hello")

	// Clean up when done
	unsub()
	stream.Close()

	// Output:
	// received: hello
}

// This example shows the Notifier type for value-less event broadcasting.
func ExampleNotifier() {
	refresh := observe.NewNotifier()

	unsub := refresh.AddListener(func() {
		fmt.Println("Refresh triggered!")
	})

	refresh.Notify()

	unsub()

	// Output:
	// Refresh triggered!
}
