// Command livequery validates and generates query registrations for
// projects using the livequery framework packages.
package main

import (
	"os"

	"github.com/go-drift/livequery/cmd/livequery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
