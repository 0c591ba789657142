package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
	"github.com/joshuapare/arenakit/internal/sysmem"
)

const (
	// DefaultMinChunkSize is the data capacity of the first chunk an arena
	// grows, unless overridden via Options.MinChunkSize.
	DefaultMinChunkSize = 1 << 12 // 4 KiB

	// maxChunkSize caps the doubling growth policy. Individual requests
	// larger than this still succeed via dedicated, exactly-sized chunks.
	maxChunkSize = 1 << 22 // 4 MiB
)

// Options configures a new arena. The zero value selects the defaults.
type Options struct {
	// MinChunkSize is the data capacity of the first grown chunk. Rounded
	// up to ChunkAlign. Zero selects DefaultMinChunkSize.
	MinChunkSize uintptr

	// Sys is the system allocator backing chunk growth and teardown.
	// Nil selects sysmem.Default().
	Sys sysmem.Allocator
}

// Arena is a chunked bump allocator. It satisfies allocation requests by
// moving a cursor downward inside the current chunk, growing by a new,
// larger chunk when the current one is exhausted, and releases every chunk
// at once on Close.
//
// An arena is single-owner, single-threaded: it provides no internal
// locking and must not be mutated concurrently. Give each goroutine its own
// arena and move results between them by transferring ownership
// (IntoRawParts / FromRawParts), never by sharing one arena.
type Arena struct {
	// current is the active chunk; previously exhausted chunks remain
	// reachable through the footer's prev links, terminated by the
	// canonical empty chunk.
	current *chunkFooter

	sys sysmem.Allocator

	// nextSize is the data capacity the next policy-grown chunk will have.
	// Doubles on every policy growth up to maxChunkSize; dedicated
	// oversized chunks leave it untouched.
	nextSize uintptr

	// growths counts chunk-growth events for Stats.
	growths int
}

// New creates an empty arena with default options. No chunk is allocated
// until the first allocation request.
func New() *Arena {
	return NewWith(Options{})
}

// NewWith creates an empty arena with the given options.
func NewWith(opts Options) *Arena {
	sys := opts.Sys
	if sys == nil {
		sys = sysmem.Default()
	}
	minSize := opts.MinChunkSize
	if minSize == 0 {
		minSize = DefaultMinChunkSize
	}
	return &Arena{
		current:  &emptyChunk,
		sys:      sys,
		nextSize: layout.AlignUp(minSize, ChunkAlign),
	}
}

// Alloc returns a pointer to size bytes aligned to align inside the arena.
// align must be a power of two no larger than ChunkAlign. The returned
// memory is valid until Close or Reset; it is not guaranteed to be zeroed
// (use the typed helpers for zeroed memory). Returns nil when size is 0.
//
// Alloc never returns an error: exhaustion of the system allocator is
// treated as fatal and panics, see the package documentation.
func (a *Arena) Alloc(size, align uintptr) unsafe.Pointer {
	if !layout.IsPow2(align) || align > ChunkAlign {
		panic(fmt.Sprintf("arena: invalid allocation alignment %d", align))
	}
	if size == 0 {
		return nil
	}
	// Fast path: bump the current chunk's cursor downward. The sentinel
	// can never pass the bounds check (its cursor equals its start), so it
	// is never written to.
	f := a.current
	if c := f.cursor; size <= c {
		if p := layout.AlignDown(c-size, align); p >= f.start {
			f.cursor = p
			return unsafe.Pointer(p)
		}
	}
	return a.allocSlow(size, align)
}

// AllocBytes returns an n-byte slice backed by the arena, 8-byte aligned.
// Returns nil when n <= 0.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	p := a.Alloc(uintptr(n), 8)
	return unsafe.Slice((*byte)(p), n)
}

// allocSlow grows the chain by a chunk sized for the request, then bumps.
func (a *Arena) allocSlow(size, align uintptr) unsafe.Pointer {
	a.grow(size)
	f := a.current
	p := layout.AlignDown(f.cursor-size, align)
	// The fresh chunk was sized to fit the request and its cursor is
	// ChunkAlign-aligned, so the bump cannot fail here.
	f.cursor = p
	return unsafe.Pointer(p)
}

// grow allocates a new chunk with capacity for at least size data bytes and
// makes it current, linking the old current chunk behind it.
func (a *Arena) grow(size uintptr) {
	required := layout.AlignUp(size, ChunkAlign)
	if required < size {
		panic(fmt.Sprintf("arena: allocation size %d overflows address space", size))
	}

	capacity := a.nextSize
	if required > capacity {
		// Oversized request: dedicated chunk sized exactly to fit, so one
		// abnormally large allocation does not inflate the steady-state
		// chunk size for everything after it.
		capacity = required
	} else {
		a.nextSize = min(a.nextSize*2, maxChunkSize)
	}

	total, ok := layout.AddOverflowSafe(capacity, FooterSize)
	if !ok {
		panic(fmt.Sprintf("arena: chunk size %d overflows address space", capacity))
	}
	l := layout.Layout{Size: total, Align: ChunkAlign}
	ptr, err := a.sys.Alloc(l)
	if err != nil {
		// Out of memory is fatal at this layer. Threading an error return
		// through every bump allocation would cost the common case far more
		// than it buys the exceptional one.
		panic(fmt.Sprintf("arena: chunk allocation failed: %v", err))
	}

	start := uintptr(ptr)
	footerAddr := start + capacity
	f := (*chunkFooter)(unsafe.Pointer(footerAddr))
	f.start = start
	f.cursor = footerAddr
	f.prev = a.current.addr()
	f.align = ChunkAlign
	a.current = f
	a.growths++
}

// Reset rewinds the arena for reuse: the current chunk's cursor returns to
// its footer and every older chunk in the chain is released. Memory handed
// out before Reset must no longer be used. Resetting an empty arena is a
// no-op.
func (a *Arena) Reset() error {
	f := a.current
	if f.isSentinel() {
		return nil
	}
	var errs []error
	for p := f.prevFooter(); !p.isSentinel(); {
		next := p.prevFooter()
		ptr, l := p.startPtrAndLayout()
		if err := a.sys.Free(ptr, l); err != nil {
			errs = append(errs, err)
		}
		p = next
	}
	f.prev = emptyChunk.addr()
	f.cursor = f.addr()
	return errors.Join(errs...)
}

// Close releases every chunk the arena owns, walking the chain from the
// current chunk back to the sentinel. Each chunk is released with the exact
// layout it was allocated with; the sentinel is never released. Close is
// idempotent, and the arena is empty (but reusable) afterwards.
func (a *Arena) Close() error {
	var errs []error
	f := a.current
	for !f.isSentinel() {
		prev := f.prevFooter()
		ptr, l := f.startPtrAndLayout()
		if err := a.sys.Free(ptr, l); err != nil {
			errs = append(errs, err)
		}
		f = prev
	}
	a.current = &emptyChunk
	return errors.Join(errs...)
}
