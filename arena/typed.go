package arena

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/layout"
)

// Typed helpers over the raw byte API. Arena memory is off the Go heap, so
// values stored in it must not contain Go pointers: the garbage collector
// never scans chunks, and a heap object referenced only from arena memory
// would be collected out from under it. Each helper checks its type once
// and caches the verdict.

var ptrFreeCache sync.Map // reflect.Type -> bool

// Alloc allocates a zeroed T inside the arena and returns a pointer to it.
// T must not contain Go pointers. The pointer is valid until Close or Reset.
func Alloc[T any](a *Arena) *T {
	p := AllocUninitialized[T](a)
	var zero T
	*p = zero
	return p
}

// AllocUninitialized allocates a T inside the arena without zeroing it. The
// contents are undefined; the caller must fully initialize the value before
// use.
func AllocUninitialized[T any](a *Arena) *T {
	assertPtrFree[T]()
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return &zero
	}
	return (*T)(a.Alloc(size, alignOf(unsafe.Alignof(zero))))
}

// Slice allocates an n-element []T inside the arena. Elements are zeroed.
// T must not contain Go pointers. Returns nil when n <= 0.
func Slice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	assertPtrFree[T]()
	var zero T
	elemSize := unsafe.Sizeof(zero)
	if elemSize == 0 {
		return make([]T, n)
	}
	total, ok := layout.MulOverflowSafe(elemSize, uintptr(n))
	if !ok {
		panic(fmt.Sprintf("arena: slice of %d elements of size %d overflows address space", n, elemSize))
	}
	p := a.Alloc(total, alignOf(unsafe.Alignof(zero)))
	clear(unsafe.Slice((*byte)(p), total))
	return unsafe.Slice((*T)(p), n)
}

// CopyBytes copies b into arena-backed memory and returns the copy.
// Returns nil for an empty input.
func CopyBytes(a *Arena, b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	dst := a.AllocBytes(len(b))
	copy(dst, b)
	return dst
}

// CopyString copies s into arena-backed memory and returns a string whose
// bytes live in the arena. The string must not outlive the arena.
func CopyString(a *Arena, s string) string {
	if len(s) == 0 {
		return ""
	}
	dst := a.AllocBytes(len(s))
	copy(dst, s)
	return unsafe.String(unsafe.SliceData(dst), len(dst))
}

// alignOf clamps a Go type alignment to the chunk alignment. Go types never
// require more than ChunkAlign, but the clamp keeps the contract explicit.
func alignOf(align uintptr) uintptr {
	return min(align, ChunkAlign)
}

// assertPtrFree panics when T contains Go pointers at any depth.
func assertPtrFree[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := ptrFreeCache.Load(t); ok {
		if !v.(bool) {
			panic(fmt.Sprintf("arena: %s contains Go pointers and cannot live in arena memory", t))
		}
		return
	}
	ok := isPtrFree(t)
	ptrFreeCache.Store(t, ok)
	if !ok {
		panic(fmt.Sprintf("arena: %s contains Go pointers and cannot live in arena memory", t))
	}
}

func isPtrFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isPtrFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isPtrFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
