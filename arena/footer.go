package arena

import (
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
)

// Layout contract constants. Footer size, footer field order, and chunk
// alignment are fixed per process; any two components exchanging raw chunks
// (see FromRawParts / IntoRawParts) must agree on them exactly.
const (
	// ChunkAlign is the alignment every chunk allocation is made with, and
	// the maximum alignment an individual allocation request may ask for.
	ChunkAlign = 16

	// FooterSize is the size of the chunk footer record stored in the
	// highest bytes of every chunk.
	FooterSize = unsafe.Sizeof(chunkFooter{})
)

// Compile-time layout contract checks: the footer must not require more
// alignment than ChunkAlign, and must itself span at least one ChunkAlign
// unit so a minimum-size raw block can hold it.
const (
	_ = uint(ChunkAlign - unsafe.Alignof(chunkFooter{}))
	_ = uint(FooterSize - ChunkAlign)
	_ = uint(-(FooterSize % ChunkAlign))
)

// chunkFooter is the fixed-layout metadata record stored at the very end of
// each chunk. The byte range [start, footer address) is the chunk's data
// region; bump allocation moves cursor downward from the footer address
// toward start.
//
// All fields are uintptr, so the footer contains no Go pointers: chunk
// memory lives outside the Go heap and is never scanned by the garbage
// collector, which is also what allows a chunk to be handed across ownership
// boundaries as a bare pointer.
type chunkFooter struct {
	// start is the address of the first byte of this chunk's allocation.
	// Never changes after chunk creation.
	start uintptr

	// cursor is the bump-allocation boundary, always in the range
	// [start, footer address]. It only ever decreases within a chunk's
	// lifetime, except for Reset which rewinds it to the footer address.
	cursor uintptr

	// prev is the address of the previous chunk's footer. The chain is
	// terminated by the canonical empty chunk, whose prev points to itself.
	prev uintptr

	// align is the alignment this chunk's allocation was made with.
	// Required to reconstruct the exact release layout: releasing with a
	// mismatched layout is undefined behavior at the system allocator.
	align uintptr
}

// emptyChunk is the canonical empty chunk: a process-wide footer with
// start == cursor == its own address and prev pointing to itself, so every
// capacity query against it reports zero and chain walks terminate on
// pointer identity. It is the initial current chunk of every arena.
//
// emptyChunk is never mutated. The allocation fast path cannot reach its
// cursor because its free count is zero, and every other mutation path
// checks isSentinel first.
var emptyChunk chunkFooter

func init() {
	addr := uintptr(unsafe.Pointer(&emptyChunk))
	emptyChunk = chunkFooter{start: addr, cursor: addr, prev: addr, align: ChunkAlign}
}

func (f *chunkFooter) addr() uintptr {
	return uintptr(unsafe.Pointer(f))
}

func (f *chunkFooter) isSentinel() bool {
	return f == &emptyChunk
}

// prevFooter returns the previous chunk in the chain. The relation is
// non-owning; ownership of every non-sentinel chunk rests with the arena.
func (f *chunkFooter) prevFooter() *chunkFooter {
	return (*chunkFooter)(unsafe.Pointer(f.prev))
}

// capacity returns the size of the chunk's data region: everything from
// start up to (not including) the footer's own storage.
func (f *chunkFooter) capacity() uintptr {
	return f.addr() - f.start
}

// usedBytes returns the number of data bytes handed out from this chunk.
func (f *chunkFooter) usedBytes() uintptr {
	return f.addr() - f.cursor
}

// freeBytes returns the number of data bytes still available in this chunk.
func (f *chunkFooter) freeBytes() uintptr {
	return f.cursor - f.start
}

// startPtrAndLayout reconstructs the pointer and layout of the whole chunk
// allocation (data region plus footer). The pair reproduces, bit-for-bit,
// the layout the chunk was allocated with; it is what teardown and raw
// transfer hand to the system allocator.
func (f *chunkFooter) startPtrAndLayout() (unsafe.Pointer, layout.Layout) {
	size := f.addr() + FooterSize - f.start
	return unsafe.Pointer(f.start), layout.Layout{Size: size, Align: f.align}
}
