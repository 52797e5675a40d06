package alloc

import (
	"math/bits"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/engine/enginetest"
	"github.com/joshuapare/memkit/engine/goheap"
	"github.com/joshuapare/memkit/internal/platform"
)

var (
	narrow = platform.Policy{MinAlign: 8}
	wide   = platform.Policy{MinAlign: 16}
)

func newHeap(t *testing.T) *goheap.Engine {
	t.Helper()
	e, err := goheap.New(goheap.WithEnv(func(string) (string, bool) { return "", false }))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, e.Close()) })
	return e
}

// newRecorded returns a router over a recording wrapper of a real engine.
func newRecorded(t *testing.T, policy platform.Policy) (*Router, *enginetest.Recorder) {
	t.Helper()
	rec := enginetest.New(newHeap(t))
	return NewRouter(rec, WithPolicy(policy)), rec
}

func TestRouter_FastPathEligibility(t *testing.T) {
	tests := []struct {
		name   string
		policy platform.Policy
		layout Layout
		alloc  enginetest.Op
		zeroed enginetest.Op
	}{
		{"wide small align", wide, Layout{64, 8}, enginetest.OpMalloc, enginetest.OpZalloc},
		{"wide at min align", wide, Layout{64, 16}, enginetest.OpMalloc, enginetest.OpZalloc},
		{"wide above min align", wide, Layout{64, 32}, enginetest.OpMallocAligned, enginetest.OpZallocAligned},
		{"size below align", wide, Layout{4, 16}, enginetest.OpMallocAligned, enginetest.OpZallocAligned},
		{"size equals align", wide, Layout{16, 16}, enginetest.OpMalloc, enginetest.OpZalloc},
		{"zero size", wide, Layout{0, 1}, enginetest.OpMallocAligned, enginetest.OpZallocAligned},
		{"narrow at min align", narrow, Layout{64, 8}, enginetest.OpMalloc, enginetest.OpZalloc},
		{"narrow above min align", narrow, Layout{64, 16}, enginetest.OpMallocAligned, enginetest.OpZallocAligned},
		{"byte align", narrow, Layout{1, 1}, enginetest.OpMalloc, enginetest.OpZalloc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newRecorded(t, tt.policy)

			p := r.Alloc(tt.layout)
			require.NotNil(t, p)
			z := r.AllocZeroed(tt.layout)
			require.NotNil(t, z)

			calls := rec.Calls()
			require.Len(t, calls, 2)
			assert.Equal(t, tt.alloc, calls[0].Op)
			assert.Equal(t, tt.zeroed, calls[1].Op)
			assert.Equal(t, tt.layout.Size, calls[0].Size)
			if tt.alloc == enginetest.OpMallocAligned {
				assert.Equal(t, tt.layout.Align, calls[0].Align)
			}
			assert.Zero(t, uintptr(p)%tt.layout.Align)
			assert.Zero(t, uintptr(z)%tt.layout.Align)

			r.Dealloc(p, tt.layout)
			r.Dealloc(z, tt.layout)
		})
	}
}

func TestRouter_AlignmentCeiling(t *testing.T) {
	policy := platform.Policy{MinAlign: 16, MaxAlign: 4096}
	r, rec := newRecorded(t, policy)

	layout := Layout{Size: 64, Align: 8192}
	assert.Nil(t, r.Alloc(layout))
	assert.Nil(t, r.AllocZeroed(layout))
	assert.Nil(t, r.AllocAt(layout, 8))
	assert.Nil(t, r.AllocZeroedAt(layout, 8))
	assert.Empty(t, rec.Calls(), "engine must not be consulted above the ceiling")

	// At the ceiling the request is forwarded.
	p := r.Alloc(Layout{Size: 64, Align: 4096})
	require.NotNil(t, p)
	assert.Equal(t, []enginetest.Op{enginetest.OpMallocAligned}, rec.Ops())
	r.Dealloc(p, Layout{Size: 64, Align: 4096})
}

func TestRouter_CeilingFromTable(t *testing.T) {
	policy := platform.Resolve("darwin", platform.CeilingTable)
	r, rec := newRecorded(t, policy)
	rec.FailWhen(func(enginetest.Call) bool { return true })

	aligns := []uintptr{1<<31 + 1}
	if bits.UintSize == 64 {
		shift := 32
		aligns = append(aligns, uintptr(1)<<shift)
	}
	for _, align := range aligns {
		l := Layout{Size: 64, Align: align}
		assert.Nil(t, r.Alloc(l))
		assert.Nil(t, r.AllocZeroed(l))
	}
	assert.Empty(t, rec.Calls(), "engine must not be consulted above the darwin ceiling")

	// Below and at the ceiling the request is forwarded; the engine's
	// answer comes back unchanged.
	assert.Nil(t, r.Alloc(Layout{Size: 64, Align: 1 << 30}))
	assert.Nil(t, r.Alloc(Layout{Size: 64, Align: 1 << 31}))
	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, enginetest.OpMallocAligned, calls[0].Op)
	assert.Equal(t, uintptr(1<<30), calls[0].Align)
	assert.Equal(t, uintptr(1<<31), calls[1].Align)

	linux := NewRouter(rec, WithPolicy(platform.Resolve("linux", platform.CeilingTable)))
	rec.Reset()
	assert.Nil(t, linux.Alloc(Layout{Size: 64, Align: 1<<31 + 1}))
	assert.Len(t, rec.Calls(), 1)
}

func TestRouter_ResizeFailurePreservesOriginal(t *testing.T) {
	for _, layout := range []Layout{{64, 8}, {64, 64}} {
		t.Run(layout.String(), func(t *testing.T) {
			r, rec := newRecorded(t, wide)

			p := r.Alloc(layout)
			require.NotNil(t, p)
			data := unsafe.Slice((*byte)(p), layout.Size)
			for i := range data {
				data[i] = byte(i)
			}

			rec.FailOn(enginetest.OpRealloc, enginetest.OpReallocAligned)
			assert.Nil(t, r.Realloc(p, layout, 1<<20))

			for i, b := range data {
				require.Equal(t, byte(i), b)
			}
			r.Dealloc(p, layout)

			calls := rec.Calls()
			require.Len(t, calls, 3)
			assert.True(t, calls[1].Failed)
			assert.Equal(t, enginetest.OpFree, calls[2].Op)
			assert.Equal(t, p, calls[2].Ptr)
		})
	}
}

func TestRouter_ResizeDecidesOnNewSize(t *testing.T) {
	r, rec := newRecorded(t, wide)

	// Shrinking below the alignment moves to the aligned path.
	fast := Layout{Size: 64, Align: 16}
	p := r.Alloc(fast)
	require.NotNil(t, p)
	p = r.Realloc(p, fast, 4)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%16)
	r.Dealloc(p, fast.WithSize(4))

	// Growing past the alignment moves to the fast path.
	aligned := Layout{Size: 8, Align: 16}
	q := r.Alloc(aligned)
	require.NotNil(t, q)
	q = r.Realloc(q, aligned, 4096)
	require.NotNil(t, q)
	assert.Zero(t, uintptr(q)%platform.MinAlign)
	r.Dealloc(q, aligned.WithSize(4096))

	assert.Equal(t, []enginetest.Op{
		enginetest.OpMalloc, enginetest.OpReallocAligned, enginetest.OpFree,
		enginetest.OpMallocAligned, enginetest.OpRealloc, enginetest.OpFree,
	}, rec.Ops())

	calls := rec.Calls()
	assert.Equal(t, uintptr(16), calls[1].Align)
	assert.Equal(t, uintptr(4), calls[1].Size)
	assert.Equal(t, uintptr(4096), calls[4].Size)
}

func TestRouter_ResizeShrinkBelowAlignment(t *testing.T) {
	rec := enginetest.New(nil)
	rec.FailWhen(func(enginetest.Call) bool { return true })
	r := NewRouter(rec, WithPolicy(wide))

	var local [64]byte
	p := unsafe.Pointer(&local[0])
	assert.Nil(t, r.Realloc(p, Layout{Size: 64, Align: 16}, 4))
	assert.Nil(t, r.Realloc(p, Layout{Size: 64, Align: 16}, 16))
	assert.Equal(t, []enginetest.Op{enginetest.OpReallocAligned, enginetest.OpRealloc}, rec.Ops())
}

func TestRouter_ResizeAboveCeiling(t *testing.T) {
	r, rec := newRecorded(t, platform.Policy{MinAlign: 16, MaxAlign: 64})

	var local [8]byte
	p := unsafe.Pointer(&local[0])
	assert.Nil(t, r.Realloc(p, Layout{Size: 8, Align: 128}, 16))
	assert.Empty(t, rec.Calls())
}

func TestRouter_ResizeSuccessInvalidatesOriginal(t *testing.T) {
	e := newHeap(t)
	r := NewRouter(e)

	layout := Layout{Size: 16, Align: 8}
	unrelated := r.Alloc(Layout{Size: 32, Align: 8})
	require.NotNil(t, unrelated)
	unsafe.Slice((*byte)(unrelated), 32)[31] = 0x7E

	p := r.Alloc(layout)
	require.NotNil(t, p)
	unsafe.Slice((*byte)(p), 16)[0] = 0x42

	q := r.Realloc(p, layout, 1<<16)
	require.NotNil(t, q)
	require.NotEqual(t, p, q)
	assert.Zero(t, e.UsableSize(p), "old block must be released")
	assert.Equal(t, byte(0x42), unsafe.Slice((*byte)(q), 1)[0])

	frees := e.Stats().Frees
	r.Dealloc(q, layout.WithSize(1<<16))
	assert.Equal(t, frees+1, e.Stats().Frees)

	assert.Equal(t, byte(0x7E), unsafe.Slice((*byte)(unrelated), 32)[31])
	r.Dealloc(unrelated, Layout{Size: 32, Align: 8})
	assert.Zero(t, e.Stats().LiveBlocks)
}

func TestRouter_ResizeNilAllocates(t *testing.T) {
	r, rec := newRecorded(t, wide)

	layout := Layout{Size: 0, Align: 8}
	p := r.Realloc(nil, layout, 128)
	require.NotNil(t, p)
	assert.Equal(t, []enginetest.Op{enginetest.OpMalloc}, rec.Ops())
	r.Dealloc(p, layout.WithSize(128))
}

func TestRouter_DeallocNil(t *testing.T) {
	r, rec := newRecorded(t, wide)

	for i := 0; i < 3; i++ {
		r.Dealloc(nil, Layout{Size: 64, Align: 8})
		r.Dealloc(nil, Layout{Size: 64, Align: 4096})
	}
	assert.Empty(t, rec.Calls())
}

func TestRouter_CrossGoroutineFree(t *testing.T) {
	e := newHeap(t)
	r := NewRouter(e)
	layouts := []Layout{{24, 8}, {100, 16}, {64, 64}, {3, 4096}}

	const n = 400
	type owned struct {
		p unsafe.Pointer
		l Layout
	}
	ch := make(chan owned, 64)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				l := layouts[(i+w)%len(layouts)]
				p := r.Alloc(l)
				if p == nil {
					panic("allocation failed")
				}
				ch <- owned{p, l}
			}
		}(w)
	}
	done := make(chan struct{})
	go func() {
		for o := range ch {
			r.Dealloc(o.p, o.l)
		}
		close(done)
	}()
	wg.Wait()
	close(ch)
	<-done

	assert.Zero(t, e.Stats().LiveBlocks)
	assert.Equal(t, uint64(4*n), e.Stats().Frees)
}

func TestRouter_RoundTrip(t *testing.T) {
	e := newHeap(t)
	r := NewRouter(e)

	for _, l := range []Layout{{1, 1}, {8, 8}, {16, 16}, {100, 32}, {4096, 4096}, {1 << 20, 64}} {
		t.Run(l.String(), func(t *testing.T) {
			p := r.AllocZeroed(l)
			require.NotNil(t, p)
			assert.Zero(t, uintptr(p)%l.Align)
			data := unsafe.Slice((*byte)(p), l.Size)
			for _, b := range data {
				require.Zero(t, b)
			}
			for i := range data {
				data[i] = 0xCC
			}
			r.Dealloc(p, l)
		})
	}
	assert.Zero(t, e.Stats().LiveBlocks)
}

func TestRouter_AllocAt(t *testing.T) {
	r, rec := newRecorded(t, wide)

	l := Layout{Size: 3 + 16*17, Align: 16}
	p := r.AllocAt(l, 3)
	require.NotNil(t, p)
	assert.Zero(t, (uintptr(p)+3)%16)

	z := r.AllocZeroedAt(Layout{Size: 64, Align: 8}, 0)
	require.NotNil(t, z)

	assert.Equal(t, []enginetest.Op{enginetest.OpMallocAlignedAt, enginetest.OpZallocAlignedAt}, rec.Ops())
	r.Dealloc(p, l)
	r.Dealloc(z, Layout{Size: 64, Align: 8})
}

func TestNewRouter_DefaultPolicy(t *testing.T) {
	r := NewRouter(newHeap(t))
	assert.Equal(t, platform.Current(), r.Policy())
	assert.NotNil(t, r.Engine())
}

func FuzzRouterDecision(f *testing.F) {
	f.Add(uint64(64), uint8(3), true)
	f.Add(uint64(4), uint8(4), false)
	f.Add(uint64(0), uint8(0), true)

	f.Fuzz(func(t *testing.T, size uint64, shift uint8, zeroed bool) {
		shift %= 20
		l := Layout{Size: uintptr(size), Align: 1 << shift}
		policy := platform.Policy{MinAlign: 16, MaxAlign: 1 << 16}

		rec := enginetest.New(nil)
		rec.FailWhen(func(enginetest.Call) bool { return true })
		r := NewRouter(rec, WithPolicy(policy))

		var p unsafe.Pointer
		if zeroed {
			p = r.AllocZeroed(l)
		} else {
			p = r.Alloc(l)
		}
		require.Nil(t, p)

		calls := rec.Calls()
		if l.Align > policy.MaxAlign {
			require.Empty(t, calls)
			return
		}
		require.Len(t, calls, 1)
		fast := l.Align <= 16 && l.Align <= l.Size
		switch {
		case fast && zeroed:
			require.Equal(t, enginetest.OpZalloc, calls[0].Op)
		case fast:
			require.Equal(t, enginetest.OpMalloc, calls[0].Op)
		case zeroed:
			require.Equal(t, enginetest.OpZallocAligned, calls[0].Op)
		default:
			require.Equal(t, enginetest.OpMallocAligned, calls[0].Op)
		}
	})
}
