package enginetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/engine/goheap"
)

func newRecorder(t *testing.T) *Recorder {
	t.Helper()
	e, err := goheap.New(goheap.WithEnv(func(string) (string, bool) { return "", false }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return New(e)
}

func TestRecorder_Forwards(t *testing.T) {
	r := newRecorder(t)

	p := r.Malloc(32)
	require.NotNil(t, p)
	q := r.MallocAligned(32, 64)
	require.NotNil(t, q)
	q = r.ReallocAligned(q, 128, 64)
	require.NotNil(t, q)
	r.Free(p)
	r.Free(q)

	assert.Equal(t, []Op{OpMalloc, OpMallocAligned, OpReallocAligned, OpFree, OpFree}, r.Ops())

	calls := r.Calls()
	assert.Equal(t, uintptr(32), calls[0].Size)
	assert.Zero(t, calls[0].Align)
	assert.Equal(t, uintptr(64), calls[1].Align)
	assert.Equal(t, calls[1].Result, calls[2].Ptr)
	assert.Equal(t, p, calls[3].Ptr)
}

func TestRecorder_FailOn(t *testing.T) {
	r := newRecorder(t)
	r.FailOn(OpMallocAligned, OpReallocAligned)

	assert.Nil(t, r.MallocAligned(16, 32))
	last, ok := r.Last()
	require.True(t, ok)
	assert.True(t, last.Failed)

	p := r.Malloc(16)
	require.NotNil(t, p)
	assert.Nil(t, r.ReallocAligned(p, 64, 32))

	r.FailWhen(nil)
	p = r.ReallocAligned(p, 64, 32)
	require.NotNil(t, p)
	r.Free(p)
}

func TestRecorder_Reset(t *testing.T) {
	r := newRecorder(t)

	r.Free(nil)
	require.Len(t, r.Calls(), 1)
	r.Reset()
	assert.Empty(t, r.Calls())
	_, ok := r.Last()
	assert.False(t, ok)
}
