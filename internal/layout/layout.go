// Package layout describes the size and alignment of raw memory blocks.
// It is the shared vocabulary between the arena, the system memory layer,
// and the raw-transfer boundary: every block is allocated, transferred, and
// released with a Layout, and release must use the exact Layout the block
// was allocated with.
package layout

import "errors"

// ErrBadAlign indicates an alignment that is zero or not a power of two.
var ErrBadAlign = errors.New("layout: alignment must be a non-zero power of two")

// Layout is a size/alignment pair for one raw memory block.
//
// Layout is a pure value: comparing two Layouts with == answers whether an
// allocate/release pair agrees bit-for-bit, which is the contract the
// system allocator requires.
type Layout struct {
	// Size is the total size of the block in bytes.
	Size uintptr

	// Align is the alignment the block was (or must be) allocated with.
	Align uintptr
}

// New builds a Layout after validating the alignment.
func New(size, align uintptr) (Layout, error) {
	if !IsPow2(align) {
		return Layout{}, ErrBadAlign
	}
	return Layout{Size: size, Align: align}, nil
}

// MustNew is New for statically known-good arguments. It panics on a bad
// alignment and is intended for package-level constants and tests.
func MustNew(size, align uintptr) Layout {
	l, err := New(size, align)
	if err != nil {
		panic(err)
	}
	return l
}
