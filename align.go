// Package align provides primitives for obtaining and adjusting memory
// addresses that satisfy an extended alignment, in environments where the
// Go runtime and C malloc guarantee only natural alignment.
//
// Align adjusts an address within a bounded buffer; Alloc and Free obtain
// aligned memory from the platform strategy selected at build time; Adaptor
// composes the same technique with an arbitrary Allocator.
package align

import "unsafe"

// Buffer describes a span of unallocated storage available for in-place
// alignment. On a successful Align the address advances and Space shrinks
// by the same amount; on failure both are left untouched.
type Buffer struct {
	Ptr   unsafe.Pointer
	Space uintptr
}

// Align finds the first address within buf that is a multiple of alignment
// and is followed by at least size bytes of the buffer. On success buf is
// advanced past the padding and the aligned address is returned.
//
// alignment must be a non-zero power of two. size may be zero, in which
// case only the padding is consumed.
func Align(alignment, size uintptr, buf *Buffer) (unsafe.Pointer, error) {
	if !isAlignment(alignment) {
		return nil, ErrInvalidAlignment
	}
	delta, ok := alignWithin(uintptr(buf.Ptr), buf.Space, alignment, size)
	if !ok {
		return nil, ErrInsufficientSpace
	}
	buf.Ptr = unsafe.Add(buf.Ptr, delta)
	buf.Space -= delta
	return buf.Ptr, nil
}

// alignWithin computes the smallest padding that brings addr up to a
// multiple of alignment while leaving size bytes of space available. The
// alignment must already be validated as a power of two, so the padding
// falls out of the low bits of the address with no division.
func alignWithin(addr, space, alignment, size uintptr) (delta uintptr, ok bool) {
	delta = -addr & (alignment - 1)
	if delta > space || size > space-delta {
		return 0, false
	}
	return delta, true
}

// IsAligned reports whether p is a multiple of alignment. It returns false
// if alignment is not a power of two.
func IsAligned(alignment uintptr, p unsafe.Pointer) bool {
	return isAlignment(alignment) && uintptr(p)&(alignment-1) == 0
}
