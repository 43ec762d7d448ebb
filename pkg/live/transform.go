package live

// Map returns fn applied to every item of the view's current snapshot, in
// order. It is a package function because Go methods cannot introduce a
// second type parameter.
func Map[T, U any](v View[T], fn func(item T, index int) U) []U {
	out := make([]U, 0, v.Len())
	v.ForEach(func(item T, index int) {
		out = append(out, fn(item, index))
	})
	return out
}

// Reduce folds the view's current snapshot into a single value, visiting
// items in order starting from init.
func Reduce[T, U any](v View[T], fn func(acc U, item T, index int) U, init U) U {
	acc := init
	v.ForEach(func(item T, index int) {
		acc = fn(acc, item, index)
	})
	return acc
}
