//go:build cgo && unix && !align_c11 && !align_memalign && !align_mmap && !align_generic

package align

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

const backendName = "posix_memalign"

// posix_memalign writes the result through an out-parameter and reports
// failure as a non-zero status. It rejects alignments weaker than a
// pointer's natural alignment, so those are raised to that floor.
func alignedAlloc(alignment, size uintptr) ([]byte, error) {
	if alignment < unsafe.Sizeof(uintptr(0)) {
		alignment = unsafe.Sizeof(uintptr(0))
	}
	payload := size
	if payload == 0 {
		payload = 1
	}

	var p unsafe.Pointer
	if rc := C.posix_memalign(&p, C.size_t(alignment), C.size_t(payload)); rc != 0 {
		return nil, ErrAllocationFailure
	}
	buf := unsafe.Slice((*byte)(p), int(payload))
	clear(buf) // match Go allocation semantics
	return buf[:int(size):int(payload)], nil
}

func alignedFree(b []byte) {
	C.free(unsafe.Pointer(unsafe.SliceData(b)))
}
