package align

import (
	"runtime"
	"unsafe"

	"github.com/JohnCGriffin/overflow"

	"github.com/danieljames/align/internal/debug"
)

// allocHeader is stored immediately before every address handed out by the
// over-allocation path. It is written once at allocation time and read
// exactly once at deallocation time to recover the block obtained from the
// base allocator. It never overlaps the payload.
type allocHeader struct {
	base uintptr // address of the block the base allocator returned
	size uintptr // length of that block in bytes
}

const headerSize = unsafe.Sizeof(allocHeader{})

// minAdaptorAlignment keeps the header stores naturally aligned.
const minAdaptorAlignment = unsafe.Alignof(allocHeader{})

// Adaptor composes an arbitrary unaligned Allocator into an aligned one:
// it over-allocates, aligns within the block, and records the original
// allocation in a header so deallocation can reverse it. The base
// allocator is borrowed, not owned, and no synchronization is added around
// it; concurrent use requires a concurrency-safe base.
type Adaptor struct {
	base  Allocator
	align uintptr
}

// NewAdaptor wraps base with a minimum alignment applied to every
// allocation. minAlign must be a non-zero power of two; values weaker than
// the header's natural alignment are raised to that floor, since the base
// allocator already guarantees it.
func NewAdaptor(base Allocator, minAlign uintptr) *Adaptor {
	if isAlignment(minAlign) && minAlign < minAdaptorAlignment {
		minAlign = minAdaptorAlignment
	}
	return &Adaptor{base: base, align: minAlign}
}

// Alignment returns the configured minimum alignment.
func (a *Adaptor) Alignment() uintptr { return a.align }

// Equal reports whether other wraps the same base allocator. Adaptors over
// the same base may free each other's allocations; adaptors over different
// bases must not.
func (a *Adaptor) Equal(other *Adaptor) bool {
	return other != nil && a.base == other.base
}

// Allocate returns a buffer of size bytes whose address is a multiple of
// the adaptor's alignment, or nil if the enlarged request overflows or the
// base allocator fails.
func (a *Adaptor) Allocate(size int) []byte {
	if size < 0 || !isAlignment(a.align) {
		return nil
	}
	b, err := overAllocate(a.base, a.align, uintptr(size))
	if err != nil {
		return nil
	}
	return b
}

func (a *Adaptor) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}

	newBuf := a.Allocate(size)
	if newBuf == nil {
		return nil
	}
	copy(newBuf, b)
	a.Free(b)
	return newBuf
}

// Free releases a buffer previously returned by Allocate on this adaptor
// or on one that compares Equal to it.
func (a *Adaptor) Free(b []byte) {
	if b == nil {
		return
	}
	overFree(a.base, b)
}

var _ Allocator = (*Adaptor)(nil)

// overAllocate obtains size bytes at the requested alignment from an
// allocator that guarantees only natural alignment. It requests
// size + alignment - 1 + headerSize bytes, aligns within the block leaving
// room for the header, and writes the header just before the returned
// address. alignment must be a power of two no weaker than
// minAdaptorAlignment.
func overAllocate(base Allocator, alignment, size uintptr) ([]byte, error) {
	if size > maxAllocSize || alignment > maxAllocSize/2 {
		return nil, ErrAllocationFailure
	}
	payload := size
	if payload == 0 {
		payload = 1 // zero-size handles still carry a stable address
	}
	total, ok := overflow.Add(int(payload), int(alignment-1+headerSize))
	if !ok {
		return nil, ErrAllocationFailure
	}

	raw := base.Allocate(total)
	if raw == nil {
		return nil, ErrAllocationFailure
	}

	buf := Buffer{
		Ptr:   unsafe.Add(unsafe.Pointer(unsafe.SliceData(raw)), headerSize),
		Space: uintptr(len(raw)) - headerSize,
	}
	p, err := Align(alignment, payload, &buf)
	if err != nil {
		base.Free(raw)
		return nil, err
	}

	hdr := (*allocHeader)(unsafe.Add(p, -int(headerSize)))
	hdr.base = addressOf(raw)
	hdr.size = uintptr(len(raw))

	off := uintptr(p) - hdr.base
	debug.Assert(off >= headerSize, "aligned address leaves no room for the allocation header")
	return raw[off : off+size : off+payload], nil
}

// overFree reverses overAllocate: it reads the header preceding b to
// recover the base block and releases it with the byte count originally
// requested from the base allocator.
func overFree(base Allocator, b []byte) {
	p := unsafe.Pointer(unsafe.SliceData(b))
	hdr := *(*allocHeader)(unsafe.Add(p, -int(headerSize)))
	debug.Assert(hdr.base != 0 && hdr.base+headerSize <= uintptr(p), "corrupt allocation header")

	raw := unsafe.Slice((*byte)(unsafe.Pointer(hdr.base)), hdr.size)
	base.Free(raw)
	runtime.KeepAlive(b)
}
