package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/layout"
)

func TestArena_EmptyUntilFirstAlloc(t *testing.T) {
	a, rec := newTestArena(t, 1024)

	assert.True(t, a.current.isSentinel(), "fresh arena starts on the sentinel")
	assert.Equal(t, 0, rec.AllocCount(), "no chunk until first allocation")

	p := a.Alloc(1, 1)
	require.NotNil(t, p)
	assert.Equal(t, 1, rec.AllocCount())
	assert.False(t, a.current.isSentinel())
}

func TestArena_AllocZeroSize(t *testing.T) {
	a, rec := newTestArena(t, 1024)
	assert.Nil(t, a.Alloc(0, 8))
	assert.Nil(t, a.AllocBytes(0))
	assert.Nil(t, a.AllocBytes(-5))
	assert.Equal(t, 0, rec.AllocCount(), "zero-size requests must not grow the arena")
}

func TestArena_AllocAlignment(t *testing.T) {
	a, _ := newTestArena(t, 4096)

	for _, align := range []uintptr{1, 2, 4, 8, 16} {
		for _, size := range []uintptr{1, 3, 17, 64} {
			p := a.Alloc(size, align)
			require.NotNil(t, p)
			assert.True(t, layout.IsAligned(uintptr(p), align),
				"Alloc(%d, %d) returned misaligned pointer", size, align)
		}
	}
}

func TestArena_InvalidAlignmentPanics(t *testing.T) {
	a, _ := newTestArena(t, 1024)
	for _, align := range []uintptr{0, 3, 24, 32, 4096} {
		assert.Panics(t, func() { a.Alloc(8, align) },
			"alignment %d must be rejected", align)
	}
}

func TestArena_AllocBytesDisjoint(t *testing.T) {
	a, _ := newTestArena(t, 1024)

	b1 := a.AllocBytes(100)
	b2 := a.AllocBytes(100)
	require.Len(t, b1, 100)
	require.Len(t, b2, 100)

	for i := range b1 {
		b1[i] = 0x11
	}
	for i := range b2 {
		b2[i] = 0x22
	}
	for i := range b1 {
		require.EqualValues(t, 0x11, b1[i], "slices must not overlap")
		require.EqualValues(t, 0x22, b2[i], "slices must not overlap")
	}
}

func TestArena_SequentialAllocationDeterministic(t *testing.T) {
	// Allocations from one arena are strictly sequential: each address is
	// determined by the chunk state the previous one left behind. Within
	// one chunk, downward bumps produce strictly decreasing addresses.
	a, _ := newTestArena(t, 4096)

	prev := a.Alloc(32, 8)
	for n := 0; n < 50; n++ {
		p := a.Alloc(32, 8)
		require.Less(t, uintptr(p), uintptr(prev))
		require.Equal(t, uintptr(prev)-32, uintptr(p))
		prev = p
	}
}

func TestArena_GrowthDoubles(t *testing.T) {
	a, _ := newTestArena(t, 1024)

	// Fill chunk after chunk with small allocations; capacities must follow
	// the doubling policy.
	for n := 0; n < (1024+2048+4096)/64; n++ {
		a.AllocBytes(64)
	}
	assert.Equal(t, []uintptr{4096, 2048, 1024}, chunkCapacities(a))
}

func TestArena_GrowthEventsLogarithmic(t *testing.T) {
	a, _ := newTestArena(t, 1024)

	// 100 KiB in 64-byte pieces. With doubling from 1 KiB the chain is
	// 1+2+4+...+64 KiB = 127 KiB, i.e. 7 growth events, not ~1600.
	const total = 100 << 10
	for n := 0; n < total/64; n++ {
		a.AllocBytes(64)
	}
	s := a.Stats()
	assert.Equal(t, 7, s.GrowthEvents)
	assert.Equal(t, uint64(total), s.Used)
}

func TestArena_OversizedRequestDedicatedChunk(t *testing.T) {
	a, _ := newTestArena(t, 1024)

	a.AllocBytes(64) // chunk 1: 1024
	a.AllocBytes(100_000)
	assert.Equal(t, []uintptr{100_000, 1024}, chunkCapacities(a))
	assert.Zero(t, a.current.freeBytes(), "dedicated chunk is sized exactly to fit")

	// The doubling trajectory continues where it left off.
	a.AllocBytes(64)
	assert.Equal(t, []uintptr{2048, 100_000, 1024}, chunkCapacities(a))
}

func TestArena_TeardownReleasesEveryChunkOnce(t *testing.T) {
	a, rec := newTestArena(t, 1024)

	for n := 0; n < 200; n++ {
		a.AllocBytes(512)
	}
	grown := rec.AllocCount()
	require.Greater(t, grown, 3, "workload should have grown several chunks")

	require.NoError(t, a.Close(), "every chunk must release with its recorded layout")
	assert.Equal(t, 0, rec.LiveCount(), "no chunk may leak")
	assert.Equal(t, grown, rec.FreeCount(), "every chunk released exactly once")

	// Close is idempotent: the sentinel is never released.
	require.NoError(t, a.Close())
	assert.Equal(t, grown, rec.FreeCount())
}

func TestArena_UsableAfterClose(t *testing.T) {
	a, rec := newTestArena(t, 1024)

	a.AllocBytes(64)
	require.NoError(t, a.Close())

	b := a.AllocBytes(64)
	require.Len(t, b, 64)
	require.NoError(t, a.Close())
	assert.Equal(t, 0, rec.LiveCount())
}

func TestArena_ResetKeepsCurrentChunk(t *testing.T) {
	a, rec := newTestArena(t, 1024)

	for n := 0; n < (1024+2048+4096)/64; n++ {
		a.AllocBytes(64)
	}
	require.Equal(t, 3, a.Stats().Chunks)

	require.NoError(t, a.Reset())
	s := a.Stats()
	assert.Equal(t, 1, s.Chunks, "Reset keeps only the current chunk")
	assert.Equal(t, uint64(4096), s.Capacity)
	assert.Zero(t, s.Used, "Reset rewinds the cursor")
	assert.Equal(t, 1, rec.LiveCount())

	// The kept chunk is reusable.
	b := a.AllocBytes(4096)
	require.Len(t, b, 4096)
	assert.Equal(t, 1, a.Stats().Chunks, "refilled without growing")
}

func TestArena_ResetEmptyArena(t *testing.T) {
	a, rec := newTestArena(t, 1024)
	require.NoError(t, a.Reset(), "Reset of an empty arena is a no-op")
	assert.True(t, a.current.isSentinel())
	assert.Equal(t, 0, rec.AllocCount())
}

func TestArena_MinChunkSizeRounded(t *testing.T) {
	a, _ := newTestArena(t, 1000)
	a.AllocBytes(8)
	assert.Equal(t, []uintptr{1008}, chunkCapacities(a),
		"MinChunkSize rounds up to ChunkAlign")
}

func TestArena_OverflowingSizePanics(t *testing.T) {
	a, rec := newTestArena(t, 1024)

	// A size whose ChunkAlign rounding wraps the address space is a fatal
	// contract violation, caught before the system allocator is involved.
	assert.Panics(t, func() { a.Alloc(^uintptr(0)-8, 8) })
	assert.Equal(t, 0, rec.AllocCount())
}
