package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/livequery/cmd/livequery/internal/config"
	"github.com/go-drift/livequery/cmd/livequery/internal/gen"
)

func init() {
	RegisterCommand(&Command{
		Name:  "gen",
		Short: "Generate query registrations",
		Long: `Generate a Go source file that registers the query bindings
declared in livequery.yaml.

The output location defaults to queries/livequery_gen.go and can be
changed with the gen.package and gen.output manifest settings.`,
		Usage: "livequery gen",
		Run:   runGen,
	})
}

func runGen(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	resolved, err := config.Resolve(root)
	if err != nil {
		return err
	}

	src, err := gen.Render(resolved)
	if err != nil {
		return err
	}

	output := filepath.Join(root, resolved.Output)
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Generated %s (%d queries)\n", resolved.Output, len(resolved.Queries))
	return nil
}
