// Package sysmem provides the system-level chunk allocator backing arenas.
//
// All memory handed out by this package lives outside the Go heap: the
// garbage collector never scans or moves it, which is what lets the arena
// store its footer bookkeeping inside the chunk itself and hand whole chunks
// across ownership boundaries as raw pointers.
//
// Every block is allocated and released with a layout.Layout, and release
// must pass the exact Layout the block was allocated with.
package sysmem

import (
	"errors"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
)

var (
	// ErrUnknownBlock indicates a release of a pointer this allocator never
	// handed out (or already released).
	ErrUnknownBlock = errors.New("sysmem: release of unknown block")

	// ErrLayoutMismatch indicates a release whose layout does not match the
	// layout the block was allocated with.
	ErrLayoutMismatch = errors.New("sysmem: release layout does not match allocation layout")
)

// Allocator allocates and releases raw memory blocks for arena chunks.
//
// Alloc returns a block of at least l.Size bytes aligned to at least
// l.Align, zero-filled. Free releases a block previously returned by Alloc
// on the same Allocator; l must equal the Layout passed to Alloc.
//
// Implementations are safe for use by a single goroutine at a time per
// arena; they are not required to be goroutine-safe themselves unless
// documented.
type Allocator interface {
	Alloc(l layout.Layout) (unsafe.Pointer, error)
	Free(ptr unsafe.Pointer, l layout.Layout) error
}

// Default returns the process-wide default chunk allocator: memory-mapped
// pages on unix, a pinned heap allocator elsewhere.
func Default() Allocator {
	return defaultAllocator
}
