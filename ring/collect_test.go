package ring

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// item keeps its own handle, the way values collected into a list do.
type item struct {
	name   string
	handle *Handle[*item]
}

func (it *item) RegisterHandle(h *Handle[*item]) { it.handle = h }

func TestCollect_RegistersHandles(t *testing.T) {
	t.Parallel()

	items := []*item{{name: "a"}, {name: "b"}, {name: "c"}}
	l := Collect(slices.Values(items))

	var names []string
	for it := range l.Values() {
		names = append(names, it.name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	for _, it := range items {
		require.NotNil(t, it.handle)
		assert.Same(t, it, it.handle.Value())
	}

	require.NoError(t, items[1].handle.Close())
	names = names[:0]
	for it := range l.Values() {
		names = append(names, it.name)
	}
	assert.Equal(t, []string{"a", "c"}, names)

	require.NoError(t, items[0].handle.Close())
	require.NoError(t, items[2].handle.Close())
	assert.Zero(t, l.Len())
}
