package query

// Node is the minimal tree protocol the finder engine walks. Any host
// tree (an element tree, a render tree, a document model) participates by
// exposing ordered child traversal with early stop.
type Node interface {
	// VisitChildren calls visitor for each child in order.
	// The visitor returns false to stop the visit.
	VisitChildren(visitor func(Node) bool)
}

// Keyed is implemented by nodes that carry an identity key.
type Keyed interface {
	Key() any
}

// Payloader is implemented by nodes that host a separate domain value
// (drift elements host their widget this way). Finders that match on type
// inspect the payload when present, the node itself otherwise.
type Payloader interface {
	Payload() any
}

// payloadOf returns the value type-based finders inspect for a node.
func payloadOf(n Node) any {
	if p, ok := n.(Payloader); ok {
		return p.Payload()
	}
	return n
}

// Walk performs a depth-first pre-order traversal rooted at root.
// The visitor returns false to stop traversal.
func Walk(root Node, visitor func(Node) bool) {
	walk(root, visitor)
}

func walk(n Node, visitor func(Node) bool) bool {
	if !visitor(n) {
		return false
	}
	stopped := false
	n.VisitChildren(func(child Node) bool {
		if !walk(child, visitor) {
			stopped = true
			return false
		}
		return true
	})
	return !stopped
}
