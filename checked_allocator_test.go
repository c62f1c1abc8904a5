package align

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeT struct {
	errs []string
}

func (f *fakeT) Errorf(format string, args ...interface{}) {
	f.errs = append(f.errs, fmt.Sprintf(format, args...))
}

func (f *fakeT) Helper() {}

func TestCheckedAllocatorBalanced(t *testing.T) {
	a := NewCheckedAllocator(NewGoAllocator())

	buf := a.Allocate(128)
	assert.Equal(t, 128, a.CurrentAlloc())
	a.Free(buf)

	a.AssertSize(t, 0)
	assert.Empty(t, a.LeakRecords())
}

func TestCheckedAllocatorLeak(t *testing.T) {
	a := NewCheckedAllocator(NewGoAllocator())
	_ = a.Allocate(64)

	ft := &fakeT{}
	a.AssertSize(ft, 0)
	require.NotEmpty(t, ft.errs)
	assert.Contains(t, ft.errs[0], "LEAK of 64 bytes")

	recs := a.LeakRecords()
	require.Len(t, recs, 1)
	assert.Equal(t, 64, recs[0].Size)
	assert.True(t, strings.Contains(recs[0].Func, "TestCheckedAllocatorLeak"))

	var out bytes.Buffer
	require.NoError(t, a.DumpLeaks(&out))
	assert.Contains(t, out.String(), `"size":64`)
}

func TestCheckedAllocatorScope(t *testing.T) {
	a := NewCheckedAllocator(NewGoAllocator())
	scope := NewCheckedAllocatorScope(a)

	buf := a.Allocate(32)
	ft := &fakeT{}
	scope.CheckSize(ft)
	assert.NotEmpty(t, ft.errs)

	a.Free(buf)
	scope.CheckSize(t)
}

func TestCheckedAllocatorReallocate(t *testing.T) {
	a := NewCheckedAllocator(NewGoAllocator())

	buf := a.Allocate(100)
	buf = a.Reallocate(250, buf)
	assert.Equal(t, 250, a.CurrentAlloc())
	a.Free(buf)
	a.AssertSize(t, 0)
}
