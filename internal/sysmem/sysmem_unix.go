//go:build unix

package sysmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/arenakit/internal/layout"
)

var defaultAllocator Allocator = mmapAllocator{}

// mmapAllocator allocates chunks as anonymous private mappings. Mappings are
// page-aligned, which satisfies any chunk alignment up to the page size, and
// the kernel zero-fills fresh pages.
type mmapAllocator struct{}

func (mmapAllocator) Alloc(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return nil, fmt.Errorf("sysmem: zero-size mapping")
	}
	if l.Align > uintptr(unix.Getpagesize()) {
		return nil, fmt.Errorf("sysmem: alignment %d exceeds page size", l.Align)
	}
	data, err := unix.Mmap(-1, 0, int(l.Size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("sysmem: mmap %d bytes: %w", l.Size, err)
	}
	return unsafe.Pointer(unsafe.SliceData(data)), nil
}

func (mmapAllocator) Free(ptr unsafe.Pointer, l layout.Layout) error {
	if ptr == nil {
		return ErrUnknownBlock
	}
	if err := unix.Munmap(unsafe.Slice((*byte)(ptr), l.Size)); err != nil {
		return fmt.Errorf("sysmem: munmap %d bytes: %w", l.Size, err)
	}
	return nil
}
