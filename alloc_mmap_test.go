//go:build unix && align_mmap && !align_generic

package align

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMmapBackend(t *testing.T) {
	pageSize := uintptr(unix.Getpagesize())

	buf, err := Alloc(pageSize, 100)
	require.NoError(t, err)
	assert.True(t, IsAligned(pageSize, unsafe.Pointer(unsafe.SliceData(buf))))
	assert.Equal(t, 100, len(buf))
	assert.Equal(t, int(pageSize), cap(buf))
	Free(buf)
}

func TestMmapBackendCeiling(t *testing.T) {
	pageSize := uintptr(unix.Getpagesize())

	// above the page size this backend cannot guarantee alignment
	_, err := Alloc(pageSize*2, 100)
	assert.ErrorIs(t, err, ErrAllocationFailure)
}
