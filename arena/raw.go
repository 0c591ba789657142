package arena

import (
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
	"github.com/joshuapare/arenakit/internal/sysmem"
)

// Raw transfer constructs an arena directly over a caller-supplied memory
// block, and hands an arena's backing block to another owner, without
// copying its contents. Both sides of a transfer must agree on the layout
// contract constants (FooterSize, ChunkAlign, RawMinSize, RawMinAlign).

const (
	// RawMinSize is the minimum size of a block passed to FromRawParts:
	// the block must at least hold one footer.
	RawMinSize = FooterSize

	// RawMinAlign is the minimum alignment of a block passed to
	// FromRawParts, equal to the chunk alignment constant.
	RawMinAlign = ChunkAlign
)

// FromRawParts constructs an arena whose sole, current chunk is the given
// block, which must have been allocated with exactly layout l. The block's
// footer is written at its top and the chunk is reported as fully free.
//
// The returned arena takes ownership: Close will release the block with
// exactly layout l through the default system allocator. A caller that
// obtained the block elsewhere must keep it alive and release it itself by
// extracting it again with IntoRawParts before Close.
//
// The size and alignment contract is validated here and returns an error on
// violation. One obligation remains on the caller and cannot be checked:
// the byte range [ptr, ptr+l.Size) must lie within a single real allocation
// the caller is relinquishing, and must be writable.
func FromRawParts(ptr unsafe.Pointer, l layout.Layout) (*Arena, error) {
	return FromRawPartsIn(ptr, l, nil)
}

// FromRawPartsIn is FromRawParts with an explicit system allocator, which
// must be the allocator the block came from (nil selects sysmem.Default()).
func FromRawPartsIn(ptr unsafe.Pointer, l layout.Layout, sys sysmem.Allocator) (*Arena, error) {
	if ptr == nil {
		return nil, ErrRawNilPointer
	}
	if !layout.IsAligned(uintptr(ptr), RawMinAlign) {
		return nil, ErrRawMisaligned
	}
	if l.Size < RawMinSize {
		return nil, ErrRawSizeTooSmall
	}
	if !layout.IsAligned(l.Size, RawMinAlign) {
		return nil, ErrRawSizeUnaligned
	}
	if !layout.IsPow2(l.Align) || l.Align < RawMinAlign {
		return nil, ErrRawAlignTooSmall
	}

	a := NewWith(Options{Sys: sys})
	start := uintptr(ptr)
	footerAddr := start + l.Size - FooterSize
	f := (*chunkFooter)(unsafe.Pointer(footerAddr))
	f.start = start
	f.cursor = footerAddr
	f.prev = emptyChunk.addr()
	f.align = l.Align
	a.current = f
	return a, nil
}

// IntoRawParts extracts the arena's sole chunk as a (pointer, layout) pair
// suitable for reconstruction with FromRawParts by another owner. The arena
// gives up ownership: afterwards it is empty, and Close will not touch the
// transferred block. This is a hard single-owner hand-off; the source side
// must not read or release the block after a successful transfer.
//
// Fails with ErrNoChunk when the arena is empty and ErrChainNotSole when it
// owns more than one chunk (a multi-chunk arena has no single block to hand
// off).
func (a *Arena) IntoRawParts() (unsafe.Pointer, layout.Layout, error) {
	f := a.current
	if f.isSentinel() {
		return nil, layout.Layout{}, ErrNoChunk
	}
	if !f.prevFooter().isSentinel() {
		return nil, layout.Layout{}, ErrChainNotSole
	}
	ptr, l := f.startPtrAndLayout()
	a.current = &emptyChunk
	return ptr, l, nil
}
