package align

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignWithin(t *testing.T) {
	tests := []struct {
		name            string
		addr, space     uintptr
		alignment, size uintptr
		delta           uintptr
		ok              bool
	}{
		{"misaligned fits", 0x1003, 32, 16, 8, 13, true},
		{"misaligned too large", 0x1003, 32, 16, 32, 0, false},
		{"already aligned", 0x1000, 32, 16, 16, 0, true},
		{"already aligned exact fit", 0x1000, 16, 16, 16, 0, true},
		{"zero size consumes padding only", 0x1001, 8, 8, 0, 7, true},
		{"zero everything", 0x1000, 0, 16, 0, 0, true},
		{"padding alone exceeds space", 0x1001, 3, 16, 0, 0, false},
		{"size exceeds space", 0x1000, 8, 8, 9, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			delta, ok := alignWithin(test.addr, test.space, test.alignment, test.size)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.delta, delta)
			if ok {
				assert.Zero(t, (test.addr+delta)&(test.alignment-1))
			}
		})
	}
}

func TestAlign(t *testing.T) {
	for _, alignment := range []uintptr{1, 2, 8, 16, 64, 256} {
		t.Run(fmt.Sprint(alignment), func(t *testing.T) {
			const size = 8
			block := make([]byte, size+alignment-1)
			orig := Buffer{Ptr: unsafe.Pointer(unsafe.SliceData(block)), Space: uintptr(len(block))}

			buf := orig
			p, err := Align(alignment, size, &buf)
			require.NoError(t, err)
			assert.True(t, IsAligned(alignment, p))
			assert.Equal(t, buf.Ptr, p)

			// success keeps the window inside the original buffer
			assert.GreaterOrEqual(t, buf.Space, uintptr(size))
			assert.Equal(t, orig.Space, buf.Space+(uintptr(p)-uintptr(orig.Ptr)))
		})
	}
}

func TestAlignInsufficientSpace(t *testing.T) {
	block := make([]byte, 64)
	buf := Buffer{Ptr: unsafe.Pointer(unsafe.SliceData(block)), Space: 16}
	orig := buf

	_, err := Align(64, 32, &buf)
	assert.ErrorIs(t, err, ErrInsufficientSpace)
	// failure must not mutate the buffer
	assert.Equal(t, orig, buf)
}

func TestAlignInvalidAlignment(t *testing.T) {
	block := make([]byte, 64)
	for _, alignment := range []uintptr{0, 3, 17, 24} {
		t.Run(fmt.Sprint(alignment), func(t *testing.T) {
			buf := Buffer{Ptr: unsafe.Pointer(unsafe.SliceData(block)), Space: uintptr(len(block))}
			orig := buf
			_, err := Align(alignment, 1, &buf)
			assert.ErrorIs(t, err, ErrInvalidAlignment)
			assert.Equal(t, orig, buf)
		})
	}
}

func TestIsAligned(t *testing.T) {
	block := make([]uint64, 8)
	p := unsafe.Pointer(unsafe.SliceData(block))

	assert.True(t, IsAligned(1, p))
	assert.True(t, IsAligned(8, p))
	assert.False(t, IsAligned(8, unsafe.Add(p, 4)))
	assert.True(t, IsAligned(4, unsafe.Add(p, 4)))
	// non-power-of-two alignments are never satisfied
	assert.False(t, IsAligned(17, p))
	assert.False(t, IsAligned(0, p))
}
