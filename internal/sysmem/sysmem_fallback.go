//go:build !unix

package sysmem

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
)

var defaultAllocator Allocator = &heapAllocator{blocks: make(map[unsafe.Pointer][]byte)}

// heapAllocator is the fallback for platforms without mmap support. Blocks
// are carved out of ordinary Go allocations; the registry keeps each backing
// slice reachable so the garbage collector cannot reclaim or move a block
// while the arena still points into it.
type heapAllocator struct {
	mu     sync.Mutex
	blocks map[unsafe.Pointer][]byte
}

func (h *heapAllocator) Alloc(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return nil, fmt.Errorf("sysmem: zero-size block")
	}
	// Over-allocate so the handed-out pointer can be aligned manually.
	buf := make([]byte, l.Size+l.Align)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	aligned := layout.AlignUp(base, l.Align)
	ptr := unsafe.Pointer(unsafe.SliceData(buf[aligned-base:]))

	h.mu.Lock()
	h.blocks[ptr] = buf
	h.mu.Unlock()
	return ptr, nil
}

func (h *heapAllocator) Free(ptr unsafe.Pointer, l layout.Layout) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.blocks[ptr]; !ok {
		return ErrUnknownBlock
	}
	delete(h.blocks, ptr)
	return nil
}
