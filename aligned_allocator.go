package align

// AlignedAllocator is an Allocator that obtains memory directly from the
// platform allocation strategy, with no adaptor bookkeeping. It is a
// stateless value: any two instances configured with the same alignment
// compare equal and may free each other's allocations.
type AlignedAllocator struct {
	align uintptr
}

// NewAlignedAllocator returns an allocator whose buffers are aligned to at
// least alignment bytes. alignment must be a non-zero power of two.
func NewAlignedAllocator(alignment uintptr) AlignedAllocator {
	return AlignedAllocator{align: alignment}
}

// Alignment returns the configured minimum alignment.
func (a AlignedAllocator) Alignment() uintptr { return a.align }

func (a AlignedAllocator) Allocate(size int) []byte {
	if size < 0 {
		return nil
	}
	b, err := Alloc(a.align, uintptr(size))
	if err != nil {
		return nil
	}
	return b
}

func (a AlignedAllocator) Reallocate(size int, b []byte) []byte {
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

func (a AlignedAllocator) Free(b []byte) { Free(b) }

var _ Allocator = AlignedAllocator{}
