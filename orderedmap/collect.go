package orderedmap

import (
	"io"
	"iter"
)

// Registrar is implemented by values (or set members) that keep their own
// entry handle. Bulk construction calls RegisterHandle immediately after
// the insert. RegisterHandle must not modify the map it is called from.
type Registrar[K comparable, V any] interface {
	RegisterHandle(h *Handle[K, V])
}

// Extend inserts every pair of seq in order, with the same move-to-back
// rule as Insert. Handles go to values implementing Registrar; otherwise
// the map retains them (see Release).
func Extend[K comparable, V any](m *Map[K, V], seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.adopt(k, v)
	}
}

// FromSeq builds a map from seq. See Extend.
func FromSeq[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()
	Extend(m, seq)
	return m
}

// SetExtend inserts every key of seq in order. Keys implementing
// Registrar[K, struct{}] receive their handle; otherwise the set retains it.
func SetExtend[K comparable](s *Set[K], seq iter.Seq[K]) {
	for k := range seq {
		_, h := s.Insert(k)
		if r, ok := any(k).(Registrar[K, struct{}]); ok {
			r.RegisterHandle(h)
			continue
		}
		s.m.retain(k, h)
	}
}

// SetFrom builds a set from seq. See SetExtend.
func SetFrom[K comparable](seq iter.Seq[K]) *Set[K] {
	s := NewSet[K]()
	SetExtend(s, seq)
	return s
}

// adopt inserts k/v and hands the resulting handle to its owner.
func (m *Map[K, V]) adopt(k K, v V) {
	prev, replaced, h := m.Insert(k, v)
	if replaced {
		// a superseded value that registered a handle gives it back
		if _, ok := any(prev).(Registrar[K, V]); ok {
			if c, ok := any(prev).(io.Closer); ok {
				_ = c.Close()
			}
		}
	}
	if r, ok := any(v).(Registrar[K, V]); ok {
		r.RegisterHandle(h)
		return
	}
	m.retain(k, h)
}

// retain keeps h as the map's own handle for k, dropping duplicates.
func (m *Map[K, V]) retain(k K, h *Handle[K, V]) {
	s := m.store()
	if _, ok := s.retained[k]; ok {
		_ = h.Close()
		return
	}
	s.retained[k] = h
}
