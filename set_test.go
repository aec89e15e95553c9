package probemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSet(t *testing.T) {
	ps := NewSet[uint64]()

	require.Zero(t, ps.Capacity())
	require.False(t, ps.Has(1))
}

func Test_NewSetWithCapacity(t *testing.T) {
	ps := NewSetWithCapacity[uint64](4096)

	require.Len(t, ps.slots, 4096)
	require.Equal(t, 4096, ps.Capacity())
}

func TestProbeSet_Insert(t *testing.T) {
	ps := NewSet[uint64]()

	require.NoError(t, ps.Insert(1))
	require.ErrorIs(t, ps.Insert(1), ErrDuplicateKey)

	require.True(t, ps.Has(1))
	require.Equal(t, 1, ps.Len())
}

func TestProbeSet_Add(t *testing.T) {
	ps := NewSet[uint64]()

	added, err := ps.Add(1)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = ps.Add(1)
	require.NoError(t, err)
	assert.False(t, added)

	require.Equal(t, 1, ps.Len())
}

func TestProbeSet_Fill(t *testing.T) {
	ps := NewSetWithCapacity[uint64](64)

	for i := range uint64(64) {
		require.NoError(t, ps.Insert(i))
	}
	require.Equal(t, 64, ps.Capacity())

	require.NoError(t, ps.Insert(64))
	require.Equal(t, 128, ps.Capacity())

	for i := range uint64(65) {
		require.True(t, ps.Has(i))
	}
}

func TestProbeSet_Tombstones(t *testing.T) {
	ps := NewSetWithCapacity[int64](16)

	require.NoError(t, ps.Insert(3))  // Slot 3
	require.NoError(t, ps.Insert(19)) // Slot 4 (via probe)
	require.NoError(t, ps.Insert(35)) // Slot 5 (via probe)

	// Delete the "bridge" element
	require.True(t, ps.Delete(19))
	require.False(t, ps.Delete(19))

	// Verify we can still find 35 even though there's a hole at 19
	require.True(t, ps.Has(35), "Probe chain broken: could not find 35 after deleting 19")
	require.False(t, ps.Has(19))

	require.NoError(t, ps.Compact())
	require.Zero(t, ps.Stats().Tombstones)
	require.True(t, ps.Has(3))
	require.True(t, ps.Has(35))
}

func TestProbeSet_BoundaryWrap(t *testing.T) {
	ps := NewSetWithCapacity[int32](16)

	// The last slot and the one after it, which wraps to slot 0.
	require.NoError(t, ps.Insert(15))
	require.NoError(t, ps.Insert(31))

	require.Equal(t, int32(31), ps.slots[0].key)
	require.True(t, ps.Has(31), "Failed to find key wrapped past the end of the table")

	ps.Reset()
	require.False(t, ps.Has(15))
	require.False(t, ps.Has(31))
}
