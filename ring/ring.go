package ring

import (
	"iter"
	"runtime"
	"weak"

	"github.com/IvanBrykalov/ringmap/internal/util"
)

// ring is the primitive behind a List: a single weak reference designating
// the current element. current is empty, or names a removed node, iff no
// live element is reachable from it.
type ring[V any] struct {
	current weak.Pointer[node[V]]
	// gc is shared by a ring and every view rotated from it.
	gc *reaper[V]
}

func newRing[V any]() *ring[V] { return &ring[V]{gc: &reaper[V]{}} }

// pushBack splices a new element in front of current, so it is the last
// one visited when iterating from current. O(1).
func (r *ring[V]) pushBack(v V) *Handle[V] {
	r.gc.drain()

	n := &node[V]{value: v}
	self := n.self()

	if head := live(r.current); head == nil {
		n.prev, n.next = self, self
		r.current = self
	} else {
		tail := live(head.prev)
		util.Assert(tail != nil, "ring: current element has no predecessor")

		// tail <-> head  =>  tail <-> n <-> head
		n.prev = head.prev
		n.next = r.current
		tail.next = self
		head.prev = self
	}

	h := &Handle[V]{ring: r, node: n}
	if r.gc != nil {
		h.cleanup = runtime.AddCleanup(h, r.gc.push, orphan[V]{r: r, n: n})
	}
	return h
}

// remove unlinks n. It is called exactly once per node, by its handle or
// by the reaper.
func (r *ring[V]) remove(n *node[V]) {
	self := n.self()
	n.removed = true
	if n.prev == self {
		// last element
		if r.current == self {
			r.current = weak.Pointer[node[V]]{}
		}
		n.prev, n.next = weak.Pointer[node[V]]{}, weak.Pointer[node[V]]{}
		return
	}

	p, q := n.prev.Value(), n.next.Value()
	util.Assert(p != nil && q != nil, "ring: neighbors of a removed element are unreachable")

	if r.current == self {
		r.current = n.next
	}
	p.next = n.next
	q.prev = n.prev
	n.prev, n.next = weak.Pointer[node[V]]{}, weak.Pointer[node[V]]{}
}

// rotate returns a new primitive starting at the neighbor of current.
// The source is not modified. An empty source yields nil.
func (r *ring[V]) rotate(forward bool) *ring[V] {
	r.gc.drain()
	cur := live(r.current)
	if cur == nil {
		return nil
	}
	if forward {
		return &ring[V]{current: cur.next, gc: r.gc}
	}
	return &ring[V]{current: cur.prev, gc: r.gc}
}

// all yields exactly one lap starting at current. The stop element is
// captured before the first yield; each successor is read before its
// predecessor is handed out.
func (r *ring[V]) all() iter.Seq[*node[V]] {
	return func(yield func(*node[V]) bool) {
		r.gc.drain()
		start := live(r.current)
		if start == nil {
			return
		}
		stop := live(start.prev)

		for n := start; n != nil; {
			end := stop == nil || n == stop
			next := live(n.next)
			if !yield(n) || end {
				return
			}
			n = next
		}
	}
}

func (r *ring[V]) currentNode() *node[V] {
	r.gc.drain()
	return live(r.current)
}
