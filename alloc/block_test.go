package alloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/engine/enginetest"
)

func TestBlock_Lifecycle(t *testing.T) {
	r, rec := newRecorded(t, wide)

	b, err := r.NewBlock(Layout{Size: 100, Align: 64})
	require.NoError(t, err)
	assert.Equal(t, 100, b.Len())
	assert.Len(t, b.Bytes(), 100)
	assert.Zero(t, uintptr(b.Ptr())%64)
	assert.False(t, b.Released())

	copy(b.Bytes(), "memkit")
	require.NoError(t, b.Resize(4096))
	assert.Equal(t, Layout{Size: 4096, Align: 64}, b.Layout())
	assert.Equal(t, "memkit", string(b.Bytes()[:6]))

	b.Release()
	b.Release()
	assert.True(t, b.Released())
	assert.Nil(t, b.Bytes())
	assert.ErrorIs(t, b.Resize(8), ErrReleased)

	assert.Equal(t, []enginetest.Op{
		enginetest.OpMallocAligned, enginetest.OpReallocAligned, enginetest.OpFree,
	}, rec.Ops())
}

func TestBlock_ResizeFailureKeepsBlock(t *testing.T) {
	r, rec := newRecorded(t, wide)

	b, err := r.NewZeroedBlock(Layout{Size: 32, Align: 8})
	require.NoError(t, err)
	for _, c := range b.Bytes() {
		require.Zero(t, c)
	}
	copy(b.Bytes(), "keep")
	before := b.Ptr()

	rec.FailOn(enginetest.OpRealloc)
	err = b.Resize(1 << 20)
	require.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, before, b.Ptr())
	assert.Equal(t, uintptr(32), b.Layout().Size)
	assert.Equal(t, "keep", string(b.Bytes()[:4]))

	b.Release()
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, enginetest.OpFree, last.Op)
	assert.Equal(t, before, last.Ptr)
}

func TestBlock_AllocationFailure(t *testing.T) {
	r, rec := newRecorded(t, wide)
	rec.FailOn(enginetest.OpMalloc, enginetest.OpZalloc)

	_, err := r.NewBlock(Layout{Size: 64, Align: 8})
	assert.ErrorIs(t, err, ErrNoMemory)
	_, err = r.NewZeroedBlock(Layout{Size: 64, Align: 8})
	assert.ErrorIs(t, err, ErrNoMemory)
}

func TestBlock_Detach(t *testing.T) {
	r, rec := newRecorded(t, wide)

	b, err := r.NewBlock(Layout{Size: 48, Align: 16})
	require.NoError(t, err)

	p, l := b.Detach()
	require.NotNil(t, p)
	assert.Equal(t, Layout{Size: 48, Align: 16}, l)
	assert.True(t, b.Released())

	b.Release()
	assert.Equal(t, []enginetest.Op{enginetest.OpMalloc}, rec.Ops())

	r.Dealloc(p, l)
	assert.Equal(t, []enginetest.Op{enginetest.OpMalloc, enginetest.OpFree}, rec.Ops())
}

func TestBlock_ZeroValue(t *testing.T) {
	var b Block
	assert.True(t, b.Released())
	b.Release()
	assert.ErrorIs(t, b.Resize(8), ErrReleased)
}

func TestRouter_Scoped(t *testing.T) {
	r, rec := newRecorded(t, wide)
	errStop := errors.New("stop")

	err := r.Scoped(Layout{Size: 64, Align: 8}, func(b *Block) error {
		copy(b.Bytes(), "scoped")
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, []enginetest.Op{enginetest.OpMalloc, enginetest.OpFree}, rec.Ops())

	rec.Reset()
	var kept *Block
	err = r.Scoped(Layout{Size: 64, Align: 8}, func(b *Block) error {
		p, l := b.Detach()
		kept = &Block{r: r, ptr: p, layout: l}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []enginetest.Op{enginetest.OpMalloc}, rec.Ops())
	kept.Release()

	rec.FailOn(enginetest.OpMalloc)
	called := false
	err = r.Scoped(Layout{Size: 64, Align: 8}, func(*Block) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNoMemory)
	assert.False(t, called)
}
