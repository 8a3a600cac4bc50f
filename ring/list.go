package ring

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// List is a front end over shared ring state. The zero value is not usable;
// construct with New.
type List[V any] struct {
	r *ring[V]
}

// New returns an empty list.
func New[V any]() *List[V] {
	return &List[V]{r: newRing[V]()}
}

// Clone returns another reference to the same ring. Appends and removals
// through either are visible through both.
func (l *List[V]) Clone() *List[V] { return &List[V]{r: l.r} }

// Append adds v at the back and returns the handle that owns it.
func (l *List[V]) Append(v V) *Handle[V] { return l.r.pushBack(v) }

// Prev returns a detached view whose iteration starts at the element before
// the current one. On an empty list it returns an alias of l.
func (l *List[V]) Prev() *List[V] { return l.rotated(false) }

// Next returns a detached view whose iteration starts at the element after
// the current one. On an empty list it returns an alias of l.
func (l *List[V]) Next() *List[V] { return l.rotated(true) }

func (l *List[V]) rotated(forward bool) *List[V] {
	if r := l.r.rotate(forward); r != nil {
		return &List[V]{r: r}
	}
	return l.Clone()
}

// All yields a reference to every element, starting at the current one.
func (l *List[V]) All() iter.Seq[Ref[V]] {
	return func(yield func(Ref[V]) bool) {
		for n := range l.r.all() {
			if !yield(Ref[V]{n: n}) {
				return
			}
		}
	}
}

// Values yields every value, starting at the current element.
func (l *List[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for n := range l.r.all() {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Current returns the element iteration starts from.
func (l *List[V]) Current() (Ref[V], bool) {
	n := l.r.currentNode()
	if n == nil {
		return Ref[V]{}, false
	}
	return Ref[V]{n: n}, true
}

// Len counts live elements. O(n).
func (l *List[V]) Len() int {
	count := 0
	for range l.r.all() {
		count++
	}
	return count
}

// String renders the values in iteration order, e.g. [a b c].
func (l *List[V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for v := range l.Values() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON encodes the values as an array in iteration order.
func (l *List[V]) MarshalJSON() ([]byte, error) {
	values := make([]V, 0)
	for v := range l.Values() {
		values = append(values, v)
	}
	return json.Marshal(values)
}

// EqualFunc reports whether a and b yield the same number of elements and
// eq holds pairwise in iteration order. O(n).
func EqualFunc[V any](a, b *List[V], eq func(V, V) bool) bool {
	nextA, stopA := iter.Pull(a.Values())
	defer stopA()
	nextB, stopB := iter.Pull(b.Values())
	defer stopB()
	for {
		va, okA := nextA()
		vb, okB := nextB()
		if okA != okB {
			return false
		}
		if !okA {
			return true
		}
		if !eq(va, vb) {
			return false
		}
	}
}

// Equal is EqualFunc with ==.
func Equal[V comparable](a, b *List[V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}
