package align

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// maxAllocSize caps single requests at what a Go slice can describe.
const maxAllocSize = uintptr(math.MaxInt)

// AlignUp rounds v up to the next multiple of alignment, which must be a
// power of two.
func AlignUp[T constraints.Integer](v, alignment T) T {
	return (v + alignment - 1) &^ (alignment - 1)
}

func isAlignment(a uintptr) bool {
	return a > 0 && a&(a-1) == 0
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
