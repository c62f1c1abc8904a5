package align

// Alloc returns a zero-initialized buffer of size bytes whose address is a
// multiple of alignment, obtained from the platform strategy selected at
// build time. alignment must be a non-zero power of two; size may be zero,
// in which case the returned handle has length zero but a valid address.
//
// The buffer must be released by passing it to Free exactly once.
func Alloc(alignment, size uintptr) ([]byte, error) {
	if !isAlignment(alignment) {
		return nil, ErrInvalidAlignment
	}
	if size > maxAllocSize || alignment > maxAllocSize/2 {
		return nil, ErrAllocationFailure
	}
	return alignedAlloc(alignment, size)
}

// Free releases a buffer obtained from Alloc. Free(nil) is a no-op;
// passing any other slice is undefined.
func Free(b []byte) {
	if b == nil {
		return
	}
	alignedFree(b)
}

// Backend names the platform allocation strategy compiled into this build.
func Backend() string { return backendName }
