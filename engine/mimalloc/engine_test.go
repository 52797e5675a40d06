//go:build cgo && mimalloc

package mimalloc

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/engine/enginetest"
)

func TestAlignedAllocation(t *testing.T) {
	e := New()
	for align := uintptr(1); align <= 1<<16; align <<= 1 {
		p := e.MallocAligned(24, align)
		require.NotNil(t, p)
		assert.Zero(t, uintptr(p)%align)
		e.Free(p)
	}

	p := e.MallocAlignedAt(3+16*17, 16, 3)
	require.NotNil(t, p)
	assert.Zero(t, (uintptr(p)+3)%16)
	e.Free(p)
}

func TestRecorderOverMimalloc(t *testing.T) {
	rec := enginetest.New(New())
	p := rec.Zalloc(128)
	require.NotNil(t, p)
	for _, b := range unsafe.Slice((*byte)(p), 128) {
		require.Zero(t, b)
	}
	rec.Free(p)
	assert.Equal(t, []enginetest.Op{enginetest.OpZalloc, enginetest.OpFree}, rec.Ops())
}

func TestHeapVisit(t *testing.T) {
	// mimalloc heaps belong to the thread that created them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e := New()
	h := e.HeapNew()
	require.NotZero(t, h)
	defer e.HeapDestroy(h)

	for i := 0; i < 4; i++ {
		require.NotNil(t, e.HeapMalloc(h, 64))
	}
	blocks := 0
	ok := e.HeapVisitBlocks(h, true, func(_ engine.Heap, _ *engine.Area, block unsafe.Pointer, _ uintptr) bool {
		if block != nil {
			blocks++
		}
		return true
	})
	assert.True(t, ok)
	assert.Equal(t, 4, blocks)
}

func TestStatsPrintOut(t *testing.T) {
	e := New()
	var lines []string
	e.StatsPrintOut(func(msg string) { lines = append(lines, msg) })
	assert.NotEmpty(t, lines)
}

func TestOptions(t *testing.T) {
	e := New()
	e.OptionSet(engine.OptionMaxErrors, 5)
	assert.Equal(t, int64(5), e.OptionGet(engine.OptionMaxErrors))
	assert.Zero(t, e.OptionGet(engine.OptionSegmentCache))
	assert.Positive(t, e.Version())
}
