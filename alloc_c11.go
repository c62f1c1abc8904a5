//go:build cgo && unix && align_c11 && !align_memalign && !align_mmap && !align_generic

package align

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/JohnCGriffin/overflow"
)

const backendName = "aligned_alloc"

// C11 aligned_alloc rejects zero sizes and requires size to be a multiple
// of alignment, so the request is rounded up before the call. A null
// result becomes ErrAllocationFailure.
func alignedAlloc(alignment, size uintptr) ([]byte, error) {
	payload := size
	if payload == 0 {
		payload = 1
	}
	sum, ok := overflow.Add(int(payload), int(alignment)-1)
	if !ok {
		return nil, ErrAllocationFailure
	}
	rounded := sum &^ (int(alignment) - 1)

	p := C.aligned_alloc(C.size_t(alignment), C.size_t(rounded))
	if p == nil {
		return nil, ErrAllocationFailure
	}
	buf := unsafe.Slice((*byte)(p), rounded)
	clear(buf) // match Go allocation semantics
	return buf[:int(size):rounded], nil
}

func alignedFree(b []byte) {
	C.free(unsafe.Pointer(unsafe.SliceData(b)))
}
