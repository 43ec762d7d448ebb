package cmd

import (
	"fmt"

	"github.com/go-drift/livequery/cmd/livequery/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate the project manifest",
		Long: `Validate livequery.yaml against the enclosing Go module.

Checks that every declared query has a unique, identifier-safe name, a
known kind (type, key, or predicate), and a target, and that the module
path in go.mod resolves.`,
		Usage: "livequery check",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	resolved, err := config.Resolve(root)
	if err != nil {
		return err
	}

	fmt.Printf("Module:  %s\n", resolved.ModulePath)
	fmt.Printf("Output:  %s (package %s)\n", resolved.Output, resolved.Package)
	fmt.Printf("Queries: %d\n", len(resolved.Queries))
	for _, q := range resolved.Queries {
		fmt.Printf("  %-16s %-10s %s\n", q.Name, q.Kind, q.Target)
	}

	fmt.Println()
	fmt.Println("Manifest OK")
	return nil
}
