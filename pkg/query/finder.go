package query

import (
	"fmt"
	"reflect"
)

// Finder locates nodes in a tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root Node) []Node
	// Description returns a human-readable description for diagnostics.
	Description() string
}

// collectMatches performs a depth-first pre-order traversal, collecting
// nodes that satisfy the predicate.
func collectMatches(root Node, predicate func(Node) bool) []Node {
	var results []Node
	Walk(root, func(n Node) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}

// typeFinder matches nodes whose payload is of the specified type.
type typeFinder struct {
	payloadType reflect.Type
	typeName    string
}

func (f *typeFinder) Evaluate(root Node) []Node {
	return collectMatches(root, func(n Node) bool {
		return reflect.TypeOf(payloadOf(n)) == f.payloadType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches nodes whose payload is type T.
func ByType[T any]() Finder {
	t := reflect.TypeFor[T]()
	return &typeFinder{payloadType: t, typeName: t.String()}
}

// typeNameFinder matches nodes whose payload type has the given name.
// Used by generated registrations, where the concrete type is only known
// as a string in the manifest.
type typeNameFinder struct {
	name string
}

func (f *typeNameFinder) Evaluate(root Node) []Node {
	return collectMatches(root, func(n Node) bool {
		t := reflect.TypeOf(payloadOf(n))
		if t == nil {
			return false
		}
		return t.String() == f.name || t.Name() == f.name
	})
}

func (f *typeNameFinder) Description() string {
	return fmt.Sprintf("ByTypeName(%q)", f.name)
}

// ByTypeName returns a finder that matches nodes whose payload type is
// named name, either fully qualified ("widgets.Button") or bare ("Button").
func ByTypeName(name string) Finder {
	return &typeNameFinder{name: name}
}

// keyFinder matches nodes whose key equals the given key.
type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root Node) []Node {
	return collectMatches(root, func(n Node) bool {
		keyed, ok := n.(Keyed)
		if !ok {
			return false
		}
		k := keyed.Key()
		if k == nil && f.key == nil {
			return true
		}
		if k == nil || f.key == nil {
			return false
		}
		// Guard against non-comparable types (slices, maps, funcs).
		if !reflect.TypeOf(k).Comparable() || !reflect.TypeOf(f.key).Comparable() {
			return reflect.DeepEqual(k, f.key)
		}
		return k == f.key
	})
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey returns a finder that matches [Keyed] nodes whose key equals key.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root Node) []Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root Node) []Node {
	ancestors := f.of.Evaluate(root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []Node
	seen := make(map[Node]bool)
	for _, ancestor := range ancestors {
		// Search within each ancestor's subtree (skip the ancestor itself)
		ancestor.VisitChildren(func(child Node) bool {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
			return true
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
