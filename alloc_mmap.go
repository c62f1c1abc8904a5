//go:build unix && align_mmap && !align_generic

package align

import (
	"github.com/JohnCGriffin/overflow"
	"golang.org/x/sys/unix"
)

const backendName = "mmap"

// Anonymous mappings are page aligned, which satisfies any alignment up to
// the page size; the length is rounded up to whole pages so the handle's
// capacity describes the full mapping. Alignments above the page size
// exceed this backend's ceiling and fail rather than returning a
// misaligned block.
func alignedAlloc(alignment, size uintptr) ([]byte, error) {
	pageSize := unix.Getpagesize()
	if alignment > uintptr(pageSize) {
		return nil, ErrAllocationFailure
	}
	payload := size
	if payload == 0 {
		payload = 1
	}
	sum, ok := overflow.Add(int(payload), pageSize-1)
	if !ok {
		return nil, ErrAllocationFailure
	}
	length := sum &^ (pageSize - 1)

	b, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, ErrAllocationFailure
	}
	return b[:int(size):length], nil
}

func alignedFree(b []byte) {
	// reconstruct the full mapping from the handle's capacity
	_ = unix.Munmap(b[:cap(b)])
}
