//go:build cgo && windows && !align_generic

package align

/*
#include <malloc.h>
*/
import "C"

import "unsafe"

const backendName = "_aligned_malloc"

// The CRT provides a native aligned allocate/free pair; no extra
// bookkeeping is needed here, but blocks must go back through
// _aligned_free rather than free.
func alignedAlloc(alignment, size uintptr) ([]byte, error) {
	payload := size
	if payload == 0 {
		payload = 1
	}

	p := C._aligned_malloc(C.size_t(payload), C.size_t(alignment))
	if p == nil {
		return nil, ErrAllocationFailure
	}
	buf := unsafe.Slice((*byte)(p), int(payload))
	clear(buf) // match Go allocation semantics
	return buf[:int(size):int(payload)], nil
}

func alignedFree(b []byte) {
	C._aligned_free(unsafe.Pointer(unsafe.SliceData(b)))
}
