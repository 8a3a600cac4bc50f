package ring

import (
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values[V any](l *List[V]) []V {
	out := make([]V, 0)
	for v := range l.Values() {
		out = append(out, v)
	}
	return out
}

func TestList_Append(t *testing.T) {
	t.Parallel()

	l := New[string]()
	assert.Empty(t, values(l))

	a := l.Append("a")
	defer a.Close()
	assert.Equal(t, []string{"a"}, values(l))

	b := l.Append("b")
	defer b.Close()
	assert.Equal(t, []string{"a", "b"}, values(l))

	c := l.Append("c")
	defer c.Close()
	assert.Equal(t, []string{"a", "b", "c"}, values(l))
	assert.Equal(t, 3, l.Len())
}

func TestList_CloseOrders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		order []int
		want  [][]string
	}{
		{"forward", []int{0, 1, 2}, [][]string{{"b", "c"}, {"c"}, {}}},
		{"backward", []int{2, 1, 0}, [][]string{{"a", "b"}, {"a"}, {}}},
		{"middle first then tail", []int{1, 2, 0}, [][]string{{"a", "c"}, {"a"}, {}}},
		{"middle first then head", []int{1, 0, 2}, [][]string{{"a", "c"}, {"c"}, {}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := New[string]()
			hs := []*Handle[string]{l.Append("a"), l.Append("b"), l.Append("c")}
			for i, idx := range tc.order {
				require.NoError(t, hs[idx].Close())
				assert.Equal(t, tc.want[i], values(l), "after closing %q", hs[idx].Value())
			}
			_, ok := l.Current()
			assert.False(t, ok, "ring must be empty")
		})
	}
}

func TestList_ReuseAfterEmpty(t *testing.T) {
	t.Parallel()

	l := New[int]()
	require.NoError(t, l.Append(1).Close())
	assert.Empty(t, values(l))

	x := l.Append(2)
	defer x.Close()
	y := l.Append(3)
	defer y.Close()
	assert.Equal(t, []int{2, 3}, values(l))
	assert.Equal(t, "Handle{prev: 3, value: 2, next: 3}", x.String())
}

func TestList_CloseCurrentMovesToSuccessor(t *testing.T) {
	t.Parallel()

	l := New[string]()
	a := l.Append("a")
	b := l.Append("b")
	defer b.Close()
	c := l.Append("c")
	defer c.Close()

	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur.Value())

	require.NoError(t, a.Close())
	cur, ok = l.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur.Value())
	assert.Equal(t, []string{"b", "c"}, values(l))

	// new elements still go to the back
	d := l.Append("d")
	defer d.Close()
	assert.Equal(t, []string{"b", "c", "d"}, values(l))
}

func TestHandle_CloseTwice(t *testing.T) {
	t.Parallel()

	l := New[string]()
	h := l.Append("a")
	require.NoError(t, h.Close())
	assert.True(t, h.Closed())
	assert.ErrorIs(t, h.Close(), ErrHandleClosed)
	assert.Equal(t, "a", h.Value())
}

func TestList_Clone(t *testing.T) {
	t.Parallel()

	l := New[string]()
	alias := l.Clone()

	a := alias.Append("a")
	defer a.Close()
	b := l.Append("b")
	assert.Equal(t, []string{"a", "b"}, values(l))
	assert.Equal(t, []string{"a", "b"}, values(alias))

	require.NoError(t, b.Close())
	assert.Equal(t, []string{"a"}, values(alias))
}

func TestList_Equal(t *testing.T) {
	t.Parallel()

	l1, l2 := New[string](), New[string]()
	a1, b1, c1 := l1.Append("a"), l1.Append("b"), l1.Append("c")
	a2, b2, c2 := l2.Append("a"), l2.Append("b"), l2.Append("c")
	assert.True(t, Equal(l1, l2))

	require.NoError(t, c1.Close())
	assert.False(t, Equal(l1, l2))

	require.NoError(t, c2.Close())
	assert.True(t, Equal(l1, l2))

	c1 = l1.Append("c")
	c2 = l2.Append("c")
	assert.True(t, Equal(l1, l2))

	require.NoError(t, c1.Close())
	require.NoError(t, b2.Close())
	assert.False(t, Equal(l1, l2), "[a b] vs [a c]")

	for _, h := range []*Handle[string]{a1, b1, a2, c2} {
		require.NoError(t, h.Close())
	}
	assert.True(t, Equal(l1, l2))
}

func TestList_EqualIsOrderSensitive(t *testing.T) {
	t.Parallel()

	l1, l2 := New[int](), New[int]()
	for _, h := range []*Handle[int]{l1.Append(1), l1.Append(2), l2.Append(2), l2.Append(1)} {
		defer h.Close()
	}
	assert.False(t, Equal(l1, l2))
	assert.True(t, EqualFunc(l1, l2, func(a, b int) bool { return true }))
}

func TestList_Debug(t *testing.T) {
	t.Parallel()

	l := New[string]()
	a := l.Append("a")
	defer a.Close()
	assert.Equal(t, "Handle{prev: a, value: a, next: a}", a.String())

	b := l.Append("b")
	defer b.Close()
	assert.Equal(t, "Handle{prev: a, value: b, next: a}", b.String())

	c := l.Append("c")
	defer c.Close()
	d := l.Append("d")
	defer d.Close()
	assert.Equal(t, "Handle{prev: b, value: c, next: d}", c.String())
	assert.Equal(t, "[a b c d]", l.String())
	assert.Equal(t, "[a b c d]", fmt.Sprint(l))
}

func TestList_Rotation(t *testing.T) {
	t.Parallel()

	l := New[string]()
	for _, v := range []string{"a", "b", "c", "d"} {
		defer l.Append(v).Close()
	}

	assert.Equal(t, "[d a b c]", l.Prev().String())
	assert.Equal(t, "[b c d a]", l.Next().String())

	cur, _ := l.Current()
	assert.Equal(t, "a", cur.Value())
	prev, _ := l.Prev().Current()
	assert.Equal(t, "d", prev.Value())
	next, _ := l.Next().Current()
	assert.Equal(t, "b", next.Value())

	back, ok := l.Next().Prev().Current()
	require.True(t, ok)
	assert.Equal(t, "a", back.Value())
	assert.Equal(t, "[a b c d]", l.String(), "rotation must not move the source")
}

func TestList_RotateEmpty(t *testing.T) {
	t.Parallel()

	l := New[int]()
	view := l.Next()
	_, ok := view.Current()
	assert.False(t, ok)

	// an empty rotation aliases the source
	h := view.Append(1)
	defer h.Close()
	assert.Equal(t, []int{1}, values(l))
}

func TestList_ViewAfterStartClosed(t *testing.T) {
	t.Parallel()

	l := New[int]()
	a := l.Append(1)
	b := l.Append(2)
	view := l.Next()
	require.NoError(t, b.Close())

	assert.Empty(t, values(view))
	assert.Zero(t, view.Len())
	_, ok := view.Current()
	assert.False(t, ok)

	var h *Handle[int]
	require.NotPanics(t, func() { h = view.Append(9) })
	assert.Equal(t, []int{9}, values(view))
	assert.Equal(t, []int{1}, values(l), "the source keeps its own ring")

	require.NoError(t, h.Close())
	require.NoError(t, a.Close())
	assert.Empty(t, values(view))
	assert.Empty(t, values(l))
}

func TestList_AppendThroughView(t *testing.T) {
	t.Parallel()

	l := New[int]()
	a := l.Append(1)
	view := l.Next()
	c := view.Append(3)
	assert.Equal(t, []int{1, 3}, values(l))
	assert.Equal(t, []int{1, 3}, values(view))

	require.NoError(t, a.Close())
	assert.Equal(t, []int{3}, values(l))
	assert.Empty(t, values(view), "the view started on the closed element")
	assert.Equal(t, "[]", view.Next().String())

	d := view.Append(4)
	assert.Equal(t, []int{4}, values(view))
	assert.Equal(t, []int{3}, values(l))

	require.NoError(t, c.Close())
	require.NoError(t, d.Close())
	assert.Empty(t, values(l))
}

func TestList_DroppedHandleIsReclaimed(t *testing.T) {
	t.Parallel()

	l := New[int]()
	a := l.Append(1)
	func() { _ = l.Append(2) }()
	c := l.Append(3)

	require.Eventually(t, func() bool {
		runtime.GC()
		return slices.Equal([]int{1, 3}, values(l))
	}, 5*time.Second, 10*time.Millisecond)

	// the ring is still well formed after the reclaim
	d := l.Append(4)
	assert.Equal(t, []int{1, 3, 4}, values(l))
	for _, h := range []*Handle[int]{a, c, d} {
		require.NoError(t, h.Close())
	}
	assert.Empty(t, values(l))
}

func TestList_CloseYieldedDuringIteration(t *testing.T) {
	t.Parallel()

	l := New[int]()
	hs := make(map[int]*Handle[int])
	for i := range 6 {
		hs[i] = l.Append(i)
	}
	for v := range l.Values() {
		if v%2 == 0 {
			require.NoError(t, hs[v].Close())
			delete(hs, v)
		}
	}
	assert.Equal(t, []int{1, 3, 5}, values(l))
	for _, h := range hs {
		require.NoError(t, h.Close())
	}
}

func TestList_EarlyBreak(t *testing.T) {
	t.Parallel()

	l := New[int]()
	for i := range 5 {
		defer l.Append(i).Close()
	}
	var seen []int
	for v := range l.Values() {
		seen = append(seen, v)
		if v == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, 5, l.Len())
}

func TestList_MarshalJSON(t *testing.T) {
	t.Parallel()

	l := New[string]()
	b, err := l.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	defer l.Append("x").Close()
	defer l.Append("y").Close()
	b, err = l.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `["x","y"]`, string(b))
}

// Random appends and closes; the live handles must always be yielded in
// insertion order.
func TestList_RandomOwnership(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		l := New[int]()
		var live []*Handle[int]
		next := 0
		for step := 0; step < 200; step++ {
			if len(live) == 0 || r.Intn(3) > 0 {
				live = append(live, l.Append(next))
				next++
			} else {
				i := r.Intn(len(live))
				require.NoError(t, live[i].Close())
				live = slices.Delete(live, i, i+1)
			}

			want := make([]int, 0, len(live))
			for _, h := range live {
				want = append(want, h.Value())
			}
			require.Equal(t, want, values(l), "round %d step %d", round, step)
		}
		for _, h := range live {
			require.NoError(t, h.Close())
		}
		require.Empty(t, values(l))
	}
}

func TestRing_BrokenNeighborPanics(t *testing.T) {
	t.Parallel()

	l := New[string]()
	a := l.Append("a")
	b := l.Append("b")

	// simulate a neighbor that has been reclaimed
	b.node.next = weak.Pointer[node[string]]{}
	require.Panics(t, func() { _ = b.Close() })
	runtime.KeepAlive(a)
}
