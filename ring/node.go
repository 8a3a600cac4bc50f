package ring

import (
	"fmt"
	"weak"
)

// node is a ring element. Links are weak; the owning Handle holds the only
// strong reference.
type node[V any] struct {
	prev  weak.Pointer[node[V]]
	next  weak.Pointer[node[V]]
	value V
	// removed is set once the node has been unlinked. A closed handle may
	// still keep the node alive, so a resolvable link is not proof of
	// membership.
	removed bool
}

func (n *node[V]) self() weak.Pointer[node[V]] { return weak.Make(n) }

// live resolves p to a node that is still linked into a ring.
func live[V any](p weak.Pointer[node[V]]) *node[V] {
	if n := p.Value(); n != nil && !n.removed {
		return n
	}
	return nil
}

// String renders the node together with its neighbors' values.
func (n *node[V]) String() string {
	return fmt.Sprintf("{prev: %v, value: %v, next: %v}",
		valueOf(n.prev), n.value, valueOf(n.next))
}

// valueOf renders the value behind a weak link, or <nil> if unresolvable.
func valueOf[V any](p weak.Pointer[node[V]]) any {
	if n := p.Value(); n != nil {
		return n.value
	}
	return nil
}

// Ref is a strong reference to a live element produced by iteration.
// Holding a Ref does not keep the element in its ring.
type Ref[V any] struct {
	n *node[V]
}

// Value returns the element's value.
func (r Ref[V]) Value() V { return r.n.value }

// String implements fmt.Stringer.
func (r Ref[V]) String() string { return fmt.Sprint(r.n.value) }
