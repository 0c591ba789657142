package layout

// Overflow-safe arithmetic on uintptr quantities. The arena's bookkeeping is
// pointer arithmetic, so every size computation that feeds it must be checked
// before it reaches an address.

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow uintptr.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow uintptr. This is essential for count * elementSize
// calculations in slice allocation.
func MulOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	prod := a * b
	if prod/b != a {
		return 0, false
	}
	return prod, true
}
