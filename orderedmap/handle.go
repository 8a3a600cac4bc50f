package orderedmap

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/IvanBrykalov/ringmap/internal/util"
	"github.com/IvanBrykalov/ringmap/ring"
)

// ErrHandleClosed is returned when a closed handle is closed or cloned.
var ErrHandleClosed = errors.New("orderedmap: handle already closed")

// handleState is the identity of one entry. The table refers to it weakly;
// open handles keep it alive. pos is replaced on every re-insert.
type handleState[K comparable, V any] struct {
	store *store[K, V]
	key   K
	pos   *ring.Handle[K]
	refs  int
}

// release destroys the entry: its order position first, then the table
// slot.
func (st *handleState[K, V]) release() {
	s := st.store
	e, ok := s.table[st.key]
	util.Assert(ok, "orderedmap: released key %v is already absent", st.key)

	_ = st.pos.Close()
	st.pos = nil
	delete(s.table, st.key)

	s.opt.Metrics.Released()
	s.opt.Metrics.Resident(len(s.table))
	if s.opt.OnEvict != nil {
		s.opt.OnEvict(st.key, e.value)
	}
}

// Handle keeps one map entry alive. Several handles may share an entry (see
// Clone and Insert); the entry is removed when the last one is closed.
type Handle[K comparable, V any] struct {
	state  *handleState[K, V]
	closed bool
}

// Key returns the entry's key.
func (h *Handle[K, V]) Key() K { return h.state.key }

// Value returns the entry's current value; false once the entry is gone.
func (h *Handle[K, V]) Value() (V, bool) {
	if e, ok := h.state.store.table[h.state.key]; ok && e.state.Value() == h.state {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Clone returns another handle to the same entry.
func (h *Handle[K, V]) Clone() (*Handle[K, V], error) {
	if h.closed {
		return nil, ErrHandleClosed
	}
	h.state.refs++
	return &Handle[K, V]{state: h.state}, nil
}

// Close gives up this handle. Closing the last handle of an entry removes
// the entry from the map.
func (h *Handle[K, V]) Close() error {
	if h.closed {
		return ErrHandleClosed
	}
	h.closed = true
	h.state.refs--
	if h.state.refs == 0 {
		h.state.release()
	}
	return nil
}

// Same reports whether h and o refer to the same entry.
func (h *Handle[K, V]) Same(o *Handle[K, V]) bool { return h.state == o.state }

// String implements fmt.Stringer.
func (h *Handle[K, V]) String() string {
	if v, ok := h.Value(); ok {
		return fmt.Sprintf("Handle{key: %v, value: %v}", h.state.key, v)
	}
	return fmt.Sprintf("Handle{key: %v, released}", h.state.key)
}
