package memkit

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/engine/goheap"
	"github.com/joshuapare/memkit/internal/platform"
)

func noEnv(string) (string, bool) { return "", false }

func newTestSurface(t *testing.T, opts ...Option) (*Surface, *goheap.Engine) {
	t.Helper()
	e, err := goheap.New(goheap.WithEnv(noEnv))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })

	s, err := New(append([]Option{WithEngine(e)}, opts...)...)
	require.NoError(t, err)
	return s, e
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithEngine(nil))
	require.Error(t, err)

	_, err = New(WithLogger(nil))
	require.Error(t, err)

	_, err = New(WithPolicy(platform.Policy{MinAlign: 12}))
	require.Error(t, err)
}

func TestSurface_RouterUsesEngine(t *testing.T) {
	s, e := newTestSurface(t)

	l, err := alloc.NewLayout(64, 16)
	require.NoError(t, err)

	p := s.Router().Alloc(l)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%16)
	assert.True(t, e.CheckOwned(p))
	assert.True(t, s.CheckOwned(p))

	s.Router().Dealloc(p, l)
	assert.False(t, e.CheckOwned(p))
}

func TestSurface_PolicyOverride(t *testing.T) {
	s, _ := newTestSurface(t, WithPolicy(platform.Policy{MinAlign: 8, MaxAlign: 64}))
	assert.Equal(t, uintptr(64), s.Policy().MaxAlign)

	l, err := alloc.NewLayout(128, 128)
	require.NoError(t, err)
	assert.Nil(t, s.Router().Alloc(l))
}

func TestSurface_NilPassThrough(t *testing.T) {
	s, e := newTestSurface(t)
	errs := 0
	e.RegisterError(func(int) { errs++ })

	s.Free(nil)
	assert.Nil(t, s.Expand(nil, 16))
	assert.Nil(t, s.Strdup(nil))
	assert.Nil(t, s.Strndup(nil, 4))
	assert.Nil(t, s.Realpath(nil, nil))
	assert.Zero(t, s.UsableSize(nil))
	assert.False(t, s.CheckOwned(nil))
	assert.False(t, s.IsInHeapRegion(nil))

	h := s.HeapGetDefault()
	assert.False(t, s.HeapVisitBlocks(h, true, nil))
	assert.False(t, s.HeapContainsBlock(h, nil))
	assert.False(t, s.HeapCheckOwned(h, nil))
	assert.Nil(t, s.HeapStrdup(h, nil))
	assert.Nil(t, s.HeapStrndup(h, nil, 4))
	assert.Nil(t, s.HeapRealpath(h, nil, nil))

	assert.Zero(t, errs)
}

func TestSurface_ForwardsEngine(t *testing.T) {
	s, _ := newTestSurface(t)

	p := s.Calloc(4, 16)
	require.NotNil(t, p)
	assert.GreaterOrEqual(t, s.UsableSize(p), uintptr(64))

	src := []byte("memkit\x00")
	d := s.Strdup(unsafe.Pointer(&src[0]))
	require.NotNil(t, d)
	assert.Equal(t, "memkit", string(unsafe.Slice((*byte)(d), 6)))

	s.Free(d)
	s.Free(p)

	st, ok := s.Stats()
	require.True(t, ok)
	assert.Equal(t, uint64(2), st.Allocs)
	assert.Equal(t, uint64(2), st.Frees)
	assert.Zero(t, st.LiveBlocks)
}

func TestSurface_HeapVisit(t *testing.T) {
	s, _ := newTestSurface(t)
	h := s.HeapNew()
	require.NotZero(t, h)

	for i := 0; i < 3; i++ {
		require.NotNil(t, s.HeapMalloc(h, 32))
	}
	blocks := 0
	ok := s.HeapVisitBlocks(h, true, func(_ engine.Heap, _ *engine.Area, block unsafe.Pointer, _ uintptr) bool {
		if block != nil {
			blocks++
		}
		return true
	})
	assert.True(t, ok)
	assert.Equal(t, 3, blocks)
	s.HeapDestroy(h)
}

func TestSurface_CloseDoesNotCloseInjectedEngine(t *testing.T) {
	s, e := newTestSurface(t)
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Close(), ErrClosed)

	p := e.Malloc(8)
	require.NotNil(t, p)
	e.Free(p)
}

func TestSurface_CrossGoroutineFree(t *testing.T) {
	s, _ := newTestSurface(t)
	l := alloc.LayoutOf[[4]uint64]()

	ptrs := make(chan unsafe.Pointer, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range ptrs {
			s.Router().Dealloc(p, l)
		}
	}()
	for i := 0; i < 64; i++ {
		p := s.Router().AllocZeroed(l)
		require.NotNil(t, p)
		ptrs <- p
	}
	close(ptrs)
	wg.Wait()

	st, ok := s.Stats()
	require.True(t, ok)
	assert.Zero(t, st.LiveBlocks)
}
