package align

// GoAllocator allocates from the Go heap. It guarantees only natural
// alignment, and its Free is a no-op: the garbage collector reclaims a
// block once no handle into it remains reachable.
type GoAllocator struct{}

func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (a *GoAllocator) Allocate(size int) []byte {
	return make([]byte, size)
}

func (a *GoAllocator) Reallocate(size int, b []byte) []byte {
	if size == len(b) {
		return b
	}

	newBuf := a.Allocate(size)
	copy(newBuf, b)
	return newBuf
}

func (a *GoAllocator) Free(b []byte) {}

var _ Allocator = (*GoAllocator)(nil)
