// Package config loads and validates the optional livequery.yaml manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Query kinds accepted in the manifest.
const (
	KindType      = "type"
	KindKey       = "key"
	KindPredicate = "predicate"
)

// Config represents the optional livequery.yaml manifest.
type Config struct {
	Gen     GenConfig `yaml:"gen"`
	Queries []Query   `yaml:"queries"`
}

// GenConfig controls where generated registrations are written.
type GenConfig struct {
	Package string `yaml:"package,omitempty"`
	Output  string `yaml:"output,omitempty"`
}

// Query declares one query binding.
type Query struct {
	// Name is the binding name; must be a valid Go identifier.
	Name string `yaml:"name"`
	// Kind selects the finder: type, key, or predicate.
	Kind string `yaml:"kind"`
	// Target is the type name, key literal, or predicate hook name.
	Target string `yaml:"target"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Package    string
	Output     string
	Queries    []Query
}

// LoadOptional reads livequery.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "livequery.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read livequery.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse livequery.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads livequery.yaml (if present), validates it, and resolves
// defaults against the module rooted at dir.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := resolveModulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	pkg := strings.TrimSpace(cfg.Gen.Package)
	if pkg == "" {
		pkg = "queries"
	}

	output := strings.TrimSpace(cfg.Gen.Output)
	if output == "" {
		output = filepath.Join(pkg, "livequery_gen.go")
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Package:    pkg,
		Output:     output,
		Queries:    cfg.Queries,
	}, nil
}

// Validate checks the manifest's query declarations.
func Validate(cfg *Config) error {
	seen := make(map[string]bool)
	for i, q := range cfg.Queries {
		if q.Name == "" {
			return fmt.Errorf("query %d: name is required", i)
		}
		if !isIdentifier(q.Name) {
			return fmt.Errorf("query %q: name must be a valid Go identifier", q.Name)
		}
		if seen[q.Name] {
			return fmt.Errorf("query %q: duplicate name", q.Name)
		}
		seen[q.Name] = true

		switch q.Kind {
		case KindType, KindKey, KindPredicate:
		default:
			return fmt.Errorf("query %q: unknown kind %q (expected type, key, or predicate)", q.Name, q.Kind)
		}

		if strings.TrimSpace(q.Target) == "" {
			return fmt.Errorf("query %q: target is required", q.Name)
		}
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func resolveModulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	if err := module.CheckPath(path); err != nil {
		return "", fmt.Errorf("invalid module path %q: %w", path, err)
	}
	return path, nil
}

// isIdentifier reports whether s is a valid Go identifier.
func isIdentifier(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return len(s) > 0
}
