package layout

// Alignment utilities for raw memory arithmetic. The arena requires chunk
// starts, cursors, and footers to sit on fixed power-of-two boundaries.

// IsPow2 reports whether a is a non-zero power of two.
func IsPow2(a uintptr) bool {
	return a != 0 && a&(a-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align.
// align must be a non-zero power of two.
//
// Example:
//
//	AlignUp(1, 16)  = 16
//	AlignUp(16, 16) = 16
//	AlignUp(17, 16) = 32
func AlignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n rounded down to the previous multiple of align.
// align must be a non-zero power of two. Used for downward bump allocation,
// where the cursor moves toward the chunk start.
//
// Example:
//
//	AlignDown(17, 16) = 16
//	AlignDown(16, 16) = 16
//	AlignDown(15, 16) = 0
func AlignDown(n, align uintptr) uintptr {
	return n &^ (align - 1)
}

// IsAligned reports whether n is a multiple of align.
// align must be a non-zero power of two.
func IsAligned(n, align uintptr) bool {
	return n&(align-1) == 0
}
