package sysmem

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
)

// Recording wraps an Allocator and records every Alloc and Free, verifying
// on Free that the pointer is live and the layout matches the allocation
// bit-for-bit. It exists for tests that assert teardown behavior: every
// chunk released exactly once, with the layout it was allocated with.
type Recording struct {
	Inner Allocator

	mu     sync.Mutex
	live   map[unsafe.Pointer]layout.Layout
	allocs int
	frees  int
}

// NewRecording wraps inner (Default() when nil) in a Recording allocator.
func NewRecording(inner Allocator) *Recording {
	if inner == nil {
		inner = Default()
	}
	return &Recording{
		Inner: inner,
		live:  make(map[unsafe.Pointer]layout.Layout),
	}
}

func (r *Recording) Alloc(l layout.Layout) (unsafe.Pointer, error) {
	ptr, err := r.Inner.Alloc(l)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.live[ptr] = l
	r.allocs++
	r.mu.Unlock()
	return ptr, nil
}

func (r *Recording) Free(ptr unsafe.Pointer, l layout.Layout) error {
	r.mu.Lock()
	got, ok := r.live[ptr]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %p", ErrUnknownBlock, ptr)
	}
	if got != l {
		r.mu.Unlock()
		return fmt.Errorf("%w: allocated %+v, released %+v", ErrLayoutMismatch, got, l)
	}
	delete(r.live, ptr)
	r.frees++
	r.mu.Unlock()
	return r.Inner.Free(ptr, l)
}

// LiveCount returns the number of blocks allocated but not yet released.
func (r *Recording) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// AllocCount returns the total number of successful allocations.
func (r *Recording) AllocCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allocs
}

// FreeCount returns the total number of successful releases.
func (r *Recording) FreeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frees
}

// Forget drops a live block from the registry without releasing it, mirroring
// an ownership transfer out of the arena. Returns the block's layout.
func (r *Recording) Forget(ptr unsafe.Pointer) (layout.Layout, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.live[ptr]
	if ok {
		delete(r.live, ptr)
	}
	return l, ok
}
