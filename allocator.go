package align

import "github.com/klauspost/cpuid/v2"

// Allocator is the unaligned allocation capability the adaptor composes
// over: allocate and release byte buffers, with only natural alignment
// guaranteed. A nil result from Allocate signals failure.
type Allocator interface {
	Allocate(size int) []byte
	Reallocate(size int, b []byte) []byte
	Free(b []byte)
}

// CacheLine returns the detected CPU cache line size, floored at 64 bytes.
// It is the alignment used by DefaultAllocator.
func CacheLine() uintptr { return cacheLine }

var cacheLine = func() uintptr {
	if cl := uintptr(cpuid.CPU.CacheLine); cl > 64 && isAlignment(cl) {
		return cl
	}
	return 64
}()

// DefaultAllocator is a default implementation of Allocator and can be used
// anywhere an Allocator is required. Buffers it returns are cache-line
// aligned.
//
// DefaultAllocator is safe to use from multiple goroutines.
var DefaultAllocator Allocator = NewAlignedAllocator(CacheLine())
