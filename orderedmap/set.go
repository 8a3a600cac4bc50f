package orderedmap

import (
	"fmt"
	"iter"
	"strings"
)

// Set is an insertion-ordered set with handle-owned members.
// The zero value is an empty set ready to use.
type Set[K comparable] struct {
	m Map[K, struct{}]
}

// NewSet returns an empty set.
func NewSet[K comparable]() *Set[K] {
	return &Set[K]{m: Map[K, struct{}]{s: newStore(Options[K, struct{}]{})}}
}

// NewSetWithOptions returns an empty set configured by opt.
func NewSetWithOptions[K comparable](opt Options[K, struct{}]) *Set[K] {
	return &Set[K]{m: Map[K, struct{}]{s: newStore(opt)}}
}

// Clone returns another reference to the same set.
func (s *Set[K]) Clone() *Set[K] { return &Set[K]{m: Map[K, struct{}]{s: s.m.store()}} }

// Insert adds k, or moves it to the back if present, and returns a handle
// to its entry.
func (s *Set[K]) Insert(k K) (present bool, h *Handle[K, struct{}]) {
	_, present, h = s.m.Insert(k, struct{}{})
	return present, h
}

// Contains reports whether k is a member.
func (s *Set[K]) Contains(k K) bool { return s.m.Contains(k) }

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.m.Len() }

// All yields members in iteration order.
func (s *Set[K]) All() iter.Seq[K] { return s.m.Keys() }

// Release closes the handle the set retained for k. See Map.Release.
func (s *Set[K]) Release(k K) bool { return s.m.Release(k) }

// Equal reports whether s and o hold the same members in the same order.
func (s *Set[K]) Equal(o *Set[K]) bool { return Equal(&s.m, &o.m) }

// String renders the members in order, e.g. set[a b].
func (s *Set[K]) String() string {
	var b strings.Builder
	b.WriteString("set[")
	first := true
	for k := range s.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&b, k)
	}
	b.WriteByte(']')
	return b.String()
}
