//go:build cgo && linux && align_memalign && !align_c11 && !align_mmap && !align_generic

package align

/*
#include <malloc.h>
*/
import "C"

import "unsafe"

const backendName = "memalign"

// Legacy backend for C libraries that predate posix_memalign. memalign
// blocks are released with ordinary free, so no bookkeeping is required.
func alignedAlloc(alignment, size uintptr) ([]byte, error) {
	payload := size
	if payload == 0 {
		payload = 1
	}

	p := C.memalign(C.size_t(alignment), C.size_t(payload))
	if p == nil {
		return nil, ErrAllocationFailure
	}
	buf := unsafe.Slice((*byte)(p), int(payload))
	clear(buf) // match Go allocation semantics
	return buf[:int(size):int(payload)], nil
}

func alignedFree(b []byte) {
	C.free(unsafe.Pointer(unsafe.SliceData(b)))
}
