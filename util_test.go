package align

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	tests := []struct {
		v, round int
		exp      int
	}{
		{60, 64, 64},
		{122, 64, 128},
		{16, 64, 64},
		{64, 64, 64},
		{13, 8, 16},
		{0, 8, 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("v%d_r%d", test.v, test.round), func(t *testing.T) {
			assert.Equal(t, test.exp, AlignUp(test.v, test.round))
		})
	}
}

func TestIsAlignment(t *testing.T) {
	tests := []struct {
		v   uintptr
		exp bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{16, true},
		{17, false},
		{24, false},
		{4096, true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d_%t", test.v, test.exp), func(t *testing.T) {
			assert.Equal(t, test.exp, isAlignment(test.v))
		})
	}
}
