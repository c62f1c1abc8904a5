package align

import (
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	json "github.com/goccy/go-json"
)

// CheckedAllocator wraps another Allocator and tracks every live
// allocation, so tests can assert that allocate/free pairs balance and
// locate the call site of anything leaked.
type CheckedAllocator struct {
	mem Allocator
	sz  int64

	allocs sync.Map
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

// CurrentAlloc returns the number of bytes currently allocated and not yet
// freed through this allocator.
func (a *CheckedAllocator) CurrentAlloc() int { return int(atomic.LoadInt64(&a.sz)) }

func (a *CheckedAllocator) Allocate(size int) []byte {
	out := a.mem.Allocate(size)
	if out == nil {
		return nil
	}
	atomic.AddInt64(&a.sz, int64(size))
	if size == 0 {
		return out
	}

	ptr := addressOf(out)
	if pc, _, l, ok := runtime.Caller(allocFrames); ok {
		a.allocs.Store(ptr, &allocSite{pc: pc, line: l, sz: size})
	}
	return out
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	oldptr := addressOf(b)
	out := a.mem.Reallocate(size, b)
	if out == nil {
		return nil
	}
	atomic.AddInt64(&a.sz, int64(size-len(b)))
	a.allocs.Delete(oldptr)
	if size == 0 {
		return out
	}

	newptr := addressOf(out)
	if pc, _, l, ok := runtime.Caller(reallocFrames); ok {
		a.allocs.Store(newptr, &allocSite{pc: pc, line: l, sz: size})
	}
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.sz, int64(len(b)*-1))
	defer a.mem.Free(b)

	if len(b) == 0 {
		return
	}

	ptr := addressOf(b)
	a.allocs.Delete(ptr)
}

const (
	defAllocFrames   = 1
	defReallocFrames = 1
)

// Use the environment variables ALIGN_CHECKED_ALLOC_FRAMES and
// ALIGN_CHECKED_REALLOC_FRAMES to control how many frames up the caller is
// looked for when recording allocation sites, for callers that go through
// wrapper layers.
var allocFrames, reallocFrames int = defAllocFrames, defReallocFrames

func init() {
	if val, ok := os.LookupEnv("ALIGN_CHECKED_ALLOC_FRAMES"); ok {
		if f, err := strconv.Atoi(val); err == nil {
			allocFrames = f
		}
	}

	if val, ok := os.LookupEnv("ALIGN_CHECKED_REALLOC_FRAMES"); ok {
		if f, err := strconv.Atoi(val); err == nil {
			reallocFrames = f
		}
	}
}

type allocSite struct {
	pc   uintptr
	line int
	sz   int
}

type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize reports an error on t for every live allocation and for any
// mismatch between sz and the current byte count.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	a.allocs.Range(func(_, value interface{}) bool {
		info := value.(*allocSite)
		f := runtime.FuncForPC(info.pc)
		t.Errorf("LEAK of %d bytes FROM %s line %d\n", info.sz, f.Name(), info.line)
		return true
	})

	if int(atomic.LoadInt64(&a.sz)) != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", sz, a.sz)
	}
}

// LeakRecord describes one live allocation for reporting.
type LeakRecord struct {
	Func string `json:"func"`
	Line int    `json:"line"`
	Size int    `json:"size"`
}

// LeakRecords returns one record per live allocation, largest first.
func (a *CheckedAllocator) LeakRecords() []LeakRecord {
	var recs []LeakRecord
	a.allocs.Range(func(_, value interface{}) bool {
		info := value.(*allocSite)
		recs = append(recs, LeakRecord{
			Func: runtime.FuncForPC(info.pc).Name(),
			Line: info.line,
			Size: info.sz,
		})
		return true
	})
	sort.Slice(recs, func(i, j int) bool { return recs[i].Size > recs[j].Size })
	return recs
}

// DumpLeaks writes the live-allocation report to w as JSON.
func (a *CheckedAllocator) DumpLeaks(w io.Writer) error {
	return json.NewEncoder(w).Encode(a.LeakRecords())
}

// CheckedAllocatorScope asserts that the live byte count at the end of a
// scope matches what it was at the start.
type CheckedAllocatorScope struct {
	alloc *CheckedAllocator
	sz    int
}

func NewCheckedAllocatorScope(alloc *CheckedAllocator) *CheckedAllocatorScope {
	sz := atomic.LoadInt64(&alloc.sz)
	return &CheckedAllocatorScope{alloc: alloc, sz: int(sz)}
}

func (c *CheckedAllocatorScope) CheckSize(t TestingT) {
	sz := int(atomic.LoadInt64(&c.alloc.sz))
	if c.sz != sz {
		t.Helper()
		t.Errorf("invalid memory size exp=%d, got=%d", c.sz, sz)
	}
}

var _ Allocator = (*CheckedAllocator)(nil)
