package live

// Result is a possibly-nested query result passed to [Collection.Reset]:
// either a single item or an ordered group of nested results. The typed
// tree lets a search collaborator report grouped matches (one group per
// matched subtree) without the collection caring about grouping depth.
type Result[T any] struct {
	item     T
	children []Result[T]
	group    bool
}

// One wraps a single item.
func One[T any](item T) Result[T] {
	return Result[T]{item: item}
}

// Many groups nested results. Groups may nest to arbitrary depth.
func Many[T any](results ...Result[T]) Result[T] {
	return Result[T]{children: results, group: true}
}

// FromSlice wraps a flat slice of items as one group.
func FromSlice[T any](items []T) Result[T] {
	results := make([]Result[T], len(items))
	for i, item := range items {
		results[i] = One(item)
	}
	return Result[T]{children: results, group: true}
}

// Flatten collapses results into a single ordered slice, depth-first
// left-to-right, to arbitrary depth.
func Flatten[T any](results ...Result[T]) []T {
	out := make([]T, 0, countItems(results))
	for _, r := range results {
		out = r.appendTo(out)
	}
	return out
}

func (r Result[T]) appendTo(dst []T) []T {
	if !r.group {
		return append(dst, r.item)
	}
	for _, child := range r.children {
		dst = child.appendTo(dst)
	}
	return dst
}

func countItems[T any](results []Result[T]) int {
	total := 0
	for _, r := range results {
		if !r.group {
			total++
			continue
		}
		total += countItems(r.children)
	}
	return total
}
