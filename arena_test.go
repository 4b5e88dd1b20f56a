package collections

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// TestArenaGrowth_WithFactor verifies that the arena grows by a new chunk when it runs out of space.
// It creates an arena that can only hold 2 nodes, then allocates 3 to force a growth.
func TestArenaGrowth_WithFactor(t *testing.T) {
	a := newArena[listNode](2, nil, WithGrowthFactor(2.0))

	for i := 0; i < 3; i++ {
		n := a.alloc()
		n.value = float64(i)
	}
	require.Len(t, a.chunks, 2)
	require.Len(t, a.chunks[1], 4, "second chunk is twice the first")
	require.Equal(t, 3, a.inUse)
}

// TestArenaGrowth_WithBytes verifies that the arena grows by a fixed number of bytes.
func TestArenaGrowth_WithBytes(t *testing.T) {
	nodeSize := int(unsafe.Sizeof(entry{}))
	a := newArena[entry](2, nil, WithGrowthBytes(nodeSize*3), WithGrowthFactor(8))

	for i := 0; i < 3; i++ {
		a.alloc()
	}
	require.Len(t, a.chunks, 2)
	require.Len(t, a.chunks[1], 3, "growth bytes take precedence over the factor")
}

func TestArena_ReusesReleasedNodes(t *testing.T) {
	a := newArena[listNode](4, nil)

	first := a.alloc()
	first.value = 42
	a.release(first)
	require.Zero(t, first.value, "released nodes are zeroed")

	again := a.alloc()
	require.Same(t, first, again)
	require.Len(t, a.chunks, 1)
}

// TestArenaGrowthThreshold verifies that the next chunk is allocated once the
// current one is filled past the threshold, and then used without a second growth.
func TestArenaGrowthThreshold(t *testing.T) {
	a := newArena[listNode](10, nil, WithGrowthThreshold(0.85))

	for i := 0; i < 8; i++ {
		a.alloc()
	}
	require.Len(t, a.chunks, 1, "80% full stays below the threshold")

	a.alloc()
	require.Len(t, a.chunks, 2, "90% full allocates the next chunk")
	require.Zero(t, a.chunk, "the current chunk is still being carved")

	for i := 0; i < 3; i++ {
		a.alloc()
	}
	require.Equal(t, 1, a.chunk)
	require.Equal(t, 2, a.offset)
	require.Len(t, a.chunks, 2)
	require.Equal(t, 12, a.inUse)
}

func TestArenaGrowthThreshold_LinkedList(t *testing.T) {
	l := NewLinkedList(WithArena(10), WithArenaGrowthThreshold(0.85), WithArenaGrowthFactor(2))
	defer l.Close()

	for i := 0; i < 12; i++ {
		require.NoError(t, l.InsertTail(float64(i)))
	}
	require.Equal(t, 12, l.Len())
	arena := l.allocator.(*arenaAllocator[listNode]).arena
	require.Len(t, arena.chunks, 2)
	require.Len(t, arena.chunks[1], 20)
}

func TestArena_Drop(t *testing.T) {
	a := newArena[listNode](2, nil, WithGrowthFactor(2.0))
	for i := 0; i < 5; i++ {
		a.alloc().value = float64(i)
	}
	a.release(a.alloc())
	require.Len(t, a.chunks, 2)

	a.drop()
	require.Nil(t, a.chunks)
	require.Nil(t, a.free)
	require.Zero(t, a.inUse)
}

// TestLinkedList_DestroyDropsArena verifies that Destroy hands every arena chunk
// back instead of keeping it reachable from the destroyed list.
func TestLinkedList_DestroyDropsArena(t *testing.T) {
	l := NewLinkedList(WithArena(1024))
	for i := 0; i < 3000; i++ {
		require.NoError(t, l.InsertTail(float64(i)))
	}
	arena := l.allocator.(*arenaAllocator[listNode]).arena
	require.Len(t, arena.chunks, 3)

	require.NoError(t, l.Destroy())
	require.Nil(t, arena.chunks)
	require.Nil(t, arena.free, "teardown does not build a free list")
	require.Nil(t, l.allocator)
	require.ErrorIs(t, l.Destroy(), ErrInvalidArgument)
}

func TestHashTable_DestroyDropsArena(t *testing.T) {
	h := NewHashTable(WithArena(64), WithCapacity(8))
	for i := 0; i < 500; i++ {
		require.NoError(t, h.Insert(keyN(i), float64(i)))
	}
	arena := h.allocator.(*arenaAllocator[entry]).arena
	require.Greater(t, len(arena.chunks), 1)

	require.NoError(t, h.Destroy())
	require.Nil(t, arena.chunks)
	require.Nil(t, arena.free)
	require.Nil(t, h.allocator)
	require.ErrorIs(t, h.Insert("k", 1), ErrInvalidArgument)
}

func TestLinkedList_ArenaAcrossChunks(t *testing.T) {
	l := NewLinkedList(WithArena(2), WithArenaGrowthBytes(int(unsafe.Sizeof(listNode{}))*3))
	defer l.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, l.InsertTail(float64(i)))
	}
	for i := 0; i < 10; i += 2 {
		_, err := l.RemoveAt(i / 2)
		require.NoError(t, err)
	}
	require.Equal(t, []float64{1, 3, 5, 7, 9}, l.Values())

	arena := l.allocator.(*arenaAllocator[listNode]).arena
	require.Equal(t, 5, arena.inUse)
	require.Len(t, arena.free, 5)
}
