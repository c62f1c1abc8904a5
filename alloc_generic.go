//go:build align_generic || (!cgo && !(unix && align_mmap))

package align

const backendName = "generic"

// No platform primitive is available: compose the over-allocation path
// with the Go heap. Returned handles are sub-slices of the base block, so
// the block stays reachable until the handle is dropped and GoAllocator's
// no-op Free is sound.
var fallbackBase GoAllocator

func alignedAlloc(alignment, size uintptr) ([]byte, error) {
	if alignment < minAdaptorAlignment {
		// the header words before the aligned address must themselves be
		// naturally aligned
		alignment = minAdaptorAlignment
	}
	return overAllocate(&fallbackBase, alignment, size)
}

func alignedFree(b []byte) {
	overFree(&fallbackBase, b)
}
