package orderedmap

import (
	"fmt"
	"iter"
	"strings"
	"weak"

	"github.com/IvanBrykalov/ringmap/internal/util"
	"github.com/IvanBrykalov/ringmap/ring"
)

// Map is an insertion-ordered map with handle-owned entries.
// The zero value is an empty map ready to use. Its table is allocated on
// first use, so copy it only after that or construct it with New.
type Map[K comparable, V any] struct {
	s *store[K, V]
}

// store is the state shared by all references to one map.
type store[K comparable, V any] struct {
	table map[K]*entry[K, V]
	keys  *ring.List[K]

	// handles owned by the map itself (bulk construction without a Registrar)
	retained map[K]*Handle[K, V]

	opt Options[K, V]
}

type entry[K comparable, V any] struct {
	value V
	state weak.Pointer[handleState[K, V]]
}

// New returns an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return NewWithOptions(Options[K, V]{})
}

// NewWithOptions returns an empty map configured by opt.
func NewWithOptions[K comparable, V any](opt Options[K, V]) *Map[K, V] {
	return &Map[K, V]{s: newStore(opt)}
}

func newStore[K comparable, V any](opt Options[K, V]) *store[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	return &store[K, V]{
		table:    make(map[K]*entry[K, V]),
		keys:     ring.New[K](),
		retained: make(map[K]*Handle[K, V]),
		opt:      opt,
	}
}

func (m *Map[K, V]) store() *store[K, V] {
	if m.s == nil {
		m.s = newStore(Options[K, V]{})
	}
	return m.s
}

// Clone returns another reference to the same map.
func (m *Map[K, V]) Clone() *Map[K, V] { return &Map[K, V]{s: m.store()} }

// Insert stores v under k and returns a handle to the entry.
//
// For a new key, replaced is false and the handle is the entry's first.
// For an existing key, the previous value is returned, the key moves to
// the back of iteration order, and the returned handle is another handle
// to the same entry.
func (m *Map[K, V]) Insert(k K, v V) (prev V, replaced bool, h *Handle[K, V]) {
	s := m.store()

	if e, ok := s.table[k]; ok {
		st := e.state.Value()
		util.Assert(st != nil, "orderedmap: entry %v outlived all of its handles", k)

		// append first: closing the old position may move the ring start
		pos := s.keys.Append(k)
		old := st.pos
		st.pos = pos
		_ = old.Close()

		prev, e.value = e.value, v
		st.refs++
		s.opt.Metrics.Inserted(true)
		return prev, true, &Handle[K, V]{state: st}
	}

	st := &handleState[K, V]{store: s, key: k, pos: s.keys.Append(k), refs: 1}
	s.table[k] = &entry[K, V]{value: v, state: weak.Make(st)}
	s.opt.Metrics.Inserted(false)
	s.opt.Metrics.Resident(len(s.table))
	return prev, false, &Handle[K, V]{state: st}
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if e, ok := m.store().table[k]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	_, ok := m.store().table[k]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.store().table) }

// Release closes the handle the map retained for k during bulk
// construction or decoding. It reports whether such a handle existed; the
// entry survives while other handles to it are open.
func (m *Map[K, V]) Release(k K) bool {
	s := m.store()
	h, ok := s.retained[k]
	if !ok {
		return false
	}
	delete(s.retained, k)
	_ = h.Close()
	return true
}

// Keys yields keys in iteration order.
func (m *Map[K, V]) Keys() iter.Seq[K] { return m.store().keys.Values() }

// Values yields values in iteration order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields key/value pairs in iteration order. Closing handles while
// consuming the sequence is undefined.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	s := m.store()
	return func(yield func(K, V) bool) {
		for k := range s.keys.Values() {
			e, ok := s.table[k]
			util.Assert(ok, "orderedmap: ordered key %v missing from table", k)
			if !yield(k, e.value) {
				return
			}
		}
	}
}

// String renders the pairs in order, e.g. orderedmap[a:1 b:2].
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("orderedmap[")
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}

// EqualFunc reports whether a and b hold the same keys in the same order
// with pairwise equal values. Order matters.
func EqualFunc[K comparable, V any](a, b *Map[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	nextA, stopA := iter.Pull2(a.All())
	defer stopA()
	nextB, stopB := iter.Pull2(b.All())
	defer stopB()
	for {
		ka, va, okA := nextA()
		kb, vb, okB := nextB()
		if okA != okB {
			return false
		}
		if !okA {
			return true
		}
		if ka != kb || !eq(va, vb) {
			return false
		}
	}
}

// Equal is EqualFunc with ==.
func Equal[K, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}
