package ring

import "iter"

// Registrar is implemented by values that keep their own handle. Extend
// calls RegisterHandle right after the value is appended.
// RegisterHandle must not modify the list it is called from.
type Registrar[V any] interface {
	RegisterHandle(h *Handle[V])
}

// Extend appends every value of seq in order, passing each new handle to
// the value it owns.
func Extend[V Registrar[V]](l *List[V], seq iter.Seq[V]) {
	for v := range seq {
		v.RegisterHandle(l.Append(v))
	}
}

// Collect builds a new list from seq. See Extend.
func Collect[V Registrar[V]](seq iter.Seq[V]) *List[V] {
	l := New[V]()
	Extend(l, seq)
	return l
}
