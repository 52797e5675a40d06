package goheap

import (
	"errors"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/osmem"
	"github.com/joshuapare/memkit/internal/platform"
)

// Version is reported by Engine.Version (major*100 + minor*10 + patch).
const Version = 100

// SmallSizeMax is the largest size accepted by the *Small entry points.
const SmallSizeMax = 128 * unsafe.Sizeof(uintptr(0))

const (
	// backingHeap is the id of the heap that exists for the engine's lifetime.
	backingHeap engine.Heap = 1

	// deferredInterval is the number of allocations between deferred free calls.
	deferredInterval = 1024

	// recentFrees is the size of the ring used to recognise double frees.
	recentFrees = 64
)

// block is one live allocation.
type block struct {
	mem    []byte         // backing memory, kept alive by the registry
	ptr    unsafe.Pointer // start of the caller's block inside mem
	size   uintptr        // requested size
	usable uintptr        // size-class capacity
	align  uintptr
	offset uintptr
	heap   *heap
	fromOS bool
	pin    runtime.Pinner
}

func (b *block) addr() uintptr { return uintptr(b.ptr) }

func (b *block) bytes() []byte { return unsafe.Slice((*byte)(b.ptr), b.usable) }

func (b *block) contains(addr uintptr) bool {
	return addr >= b.addr() && addr < b.addr()+b.usable
}

// heap is an isolated set of blocks.
type heap struct {
	id     engine.Heap
	blocks map[uintptr]*block

	// Counters folded into the engine totals by StatsMerge.
	allocs    uint64
	frees     uint64
	liveBytes int64
}

type counters struct {
	allocs        atomic.Uint64
	frees         atomic.Uint64
	reallocs      atomic.Uint64
	failures      atomic.Uint64
	liveBlocks    atomic.Int64
	liveBytes     atomic.Int64
	peakBytes     atomic.Int64
	heaps         atomic.Int64
	threads       atomic.Int64
	osBytes       atomic.Int64
	reservedPages atomic.Int64
}

// Engine is a pure Go allocator engine. The zero value is not usable; call New.
type Engine struct {
	mu       sync.Mutex
	blocks   map[uintptr]*block
	heaps    map[engine.Heap]*heap
	backing  *heap
	def      *heap
	nextHeap engine.Heap
	recent   [recentFrees]uintptr
	recentAt int
	reserved [][]byte
	closed   bool

	classes        *sizeClassTable
	limit          uintptr
	largeThreshold uintptr
	log            *zap.Logger
	opts           *optionTable

	cbMu     sync.RWMutex
	deferred engine.DeferredFreeFunc
	output   engine.OutputFunc
	onError  engine.ErrorFunc

	heartbeat   atomic.Uint64
	inDeferred  atomic.Bool
	errorsShown atomic.Int64
	processOnce sync.Once

	stats counters
}

var (
	_ engine.Engine        = (*Engine)(nil)
	_ engine.StatsReporter = (*Engine)(nil)
)

// New creates an engine with a single backing heap.
func New(opts ...Option) (*Engine, error) {
	cfg := config{
		classes:        DefaultSizeClasses,
		largeThreshold: DefaultLargeThreshold,
		lookupEnv:      os.LookupEnv,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.log == nil {
		cfg.log = Logger()
	}

	backing := &heap{id: backingHeap, blocks: make(map[uintptr]*block)}
	e := &Engine{
		blocks:         make(map[uintptr]*block),
		heaps:          map[engine.Heap]*heap{backingHeap: backing},
		backing:        backing,
		def:            backing,
		nextHeap:       backingHeap + 1,
		classes:        newSizeClassTable(cfg.classes),
		limit:          cfg.limit,
		largeThreshold: cfg.largeThreshold,
		log:            cfg.log,
		opts:           newOptionTable(cfg.lookupEnv, cfg.log),
	}
	e.stats.heaps.Store(1)
	e.ProcessInit()
	return e, nil
}

// Close releases every block, heap and OS reservation. Allocations after
// Close return nil. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	live := make([]*block, 0, len(e.blocks))
	for _, b := range e.blocks {
		live = append(live, b)
		e.unregister(b)
	}
	reserved := e.reserved
	e.reserved = nil
	e.mu.Unlock()

	if e.OptionIsEnabled(engine.OptionShowStats) {
		e.StatsPrint()
	}

	var errs []error
	for _, b := range live {
		if err := e.release(b); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range reserved {
		if err := osmem.Unmap(r); err != nil {
			errs = append(errs, err)
		}
	}
	e.stats.reservedPages.Store(0)
	return errors.Join(errs...)
}

// allocate is the single allocation path. hid 0 selects the default heap.
// Fresh blocks are always zeroed: Go memory and anonymous OS mappings
// both start zeroed, so the zeroing entry points share this path.
func (e *Engine) allocate(hid engine.Heap, size, align, offset uintptr) unsafe.Pointer {
	if !buf.IsPow2(align) || align > MaxAlign || offset > size {
		return e.fail(engine.EINVAL)
	}
	if align < platform.MinAlign {
		align = platform.MinAlign
	}
	usable, ok := e.classes.goodSize(size)
	if !ok {
		return e.fail(engine.ENOMEM)
	}
	total, ok := buf.AddSize(usable, align-1)
	if !ok {
		return e.fail(engine.ENOMEM)
	}
	if e.limit != 0 && usable > e.limit {
		return e.fail(engine.ENOMEM)
	}

	mem, fromOS := e.obtain(total)
	if mem == nil {
		return e.fail(engine.ENOMEM)
	}

	// The aligned start lies within the first align-1 bytes of mem.
	base := uintptr(unsafe.Pointer(&mem[0]))
	start := (base+offset+align-1)&^(align-1) - offset
	b := &block{
		mem:    mem,
		ptr:    unsafe.Add(unsafe.Pointer(&mem[0]), start-base),
		size:   size,
		usable: usable,
		align:  align,
		offset: offset,
		fromOS: fromOS,
	}
	if !fromOS {
		b.pin.Pin(&mem[0])
	}

	e.mu.Lock()
	h := e.resolveHeap(hid)
	errno := 0
	switch {
	case e.closed || h == nil:
		errno = engine.EINVAL
	case e.limit != 0 && uint64(e.stats.liveBytes.Load())+uint64(usable) > uint64(e.limit):
		errno = engine.ENOMEM
	}
	if errno != 0 {
		e.mu.Unlock()
		_ = e.release(b)
		return e.fail(errno)
	}
	e.register(h, b)
	e.mu.Unlock()

	e.tick()
	return b.ptr
}

// obtain returns zeroed memory of n bytes, or nil.
func (e *Engine) obtain(n uintptr) (mem []byte, fromOS bool) {
	if n >= e.largeThreshold && e.OptionIsEnabled(engine.OptionLargeOSPages) {
		region, err := osmem.Map(n, true)
		if err == nil {
			e.stats.osBytes.Add(int64(len(region)))
			return region, true
		}
		e.verbose("large OS mapping failed, using Go memory", zap.Error(err))
	}
	size, ok := buf.IntLen(n)
	if !ok {
		return nil, false
	}
	defer func() {
		// makeslice panics on lengths the runtime cannot represent.
		if recover() != nil {
			mem = nil
		}
	}()
	return make([]byte, size), false
}

// release returns a block's memory. The block must already be unregistered.
func (e *Engine) release(b *block) error {
	if b.fromOS {
		e.stats.osBytes.Add(-int64(len(b.mem)))
		err := osmem.Unmap(b.mem)
		b.mem = nil
		return err
	}
	b.pin.Unpin()
	b.mem = nil
	return nil
}

// register adds b to the registry. Caller holds mu.
func (e *Engine) register(h *heap, b *block) {
	b.heap = h
	e.blocks[b.addr()] = b
	h.blocks[b.addr()] = b
	h.allocs++
	h.liveBytes += int64(b.usable)

	e.stats.allocs.Add(1)
	e.stats.liveBlocks.Add(1)
	live := e.stats.liveBytes.Add(int64(b.usable))
	for {
		peak := e.stats.peakBytes.Load()
		if live <= peak || e.stats.peakBytes.CompareAndSwap(peak, live) {
			break
		}
	}
}

// unregister removes b from the registry. Caller holds mu.
func (e *Engine) unregister(b *block) {
	delete(e.blocks, b.addr())
	delete(b.heap.blocks, b.addr())
	b.heap.frees++
	b.heap.liveBytes -= int64(b.usable)

	e.recent[e.recentAt] = b.addr()
	e.recentAt = (e.recentAt + 1) % recentFrees

	e.stats.frees.Add(1)
	e.stats.liveBlocks.Add(-1)
	e.stats.liveBytes.Add(-int64(b.usable))
}

// recentlyFreed reports whether addr was among the last freed blocks.
// Caller holds mu.
func (e *Engine) recentlyFreed(addr uintptr) bool {
	for _, a := range e.recent {
		if a == addr && a != 0 {
			return true
		}
	}
	return false
}

// resolveHeap maps a handle to a heap; 0 is the default heap. Caller holds mu.
func (e *Engine) resolveHeap(hid engine.Heap) *heap {
	if hid == 0 {
		return e.def
	}
	return e.heaps[hid]
}

// lookup returns the live block starting at p and the errno to report
// when there is none. Caller holds mu.
func (e *Engine) lookup(p unsafe.Pointer) (*block, int) {
	addr := uintptr(p)
	if b, ok := e.blocks[addr]; ok {
		return b, 0
	}
	if e.recentlyFreed(addr) {
		return nil, engine.EAGAIN
	}
	return nil, engine.EFAULT
}

func (e *Engine) free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	e.mu.Lock()
	b, errno := e.lookup(p)
	if b == nil {
		e.mu.Unlock()
		e.report(errno)
		return
	}
	e.unregister(b)
	e.mu.Unlock()
	if err := e.release(b); err != nil {
		e.log.Error("releasing OS mapping", zap.Error(err))
	}
}

// reallocate resizes p. On failure p is left untouched and nil is returned.
// zero clears bytes between the old and the new size.
func (e *Engine) reallocate(hid engine.Heap, p unsafe.Pointer, newSize, align, offset uintptr, zero bool) unsafe.Pointer {
	if p == nil {
		return e.allocate(hid, newSize, align, offset)
	}
	if !buf.IsPow2(align) || align > MaxAlign {
		return e.fail(engine.EINVAL)
	}
	effective := max(align, platform.MinAlign)

	e.mu.Lock()
	b, errno := e.lookup(p)
	if b == nil {
		e.mu.Unlock()
		return e.fail(errno)
	}
	oldSize := b.size
	inPlace := newSize <= b.usable && newSize >= b.usable/2 &&
		offset <= newSize && (b.addr()+offset)%effective == 0
	if inPlace {
		b.size = newSize
	}
	target := hid
	if target == 0 {
		target = b.heap.id
	}
	e.mu.Unlock()

	if inPlace {
		if zero && newSize > oldSize {
			clear(b.bytes()[oldSize:newSize])
		}
		e.stats.reallocs.Add(1)
		return p
	}

	np := e.allocate(target, newSize, align, offset)
	if np == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(np), newSize), unsafe.Slice((*byte)(p), min(oldSize, newSize)))
	e.free(p)
	e.stats.reallocs.Add(1)
	return np
}

// fail records a failed request and returns nil for the caller to forward.
func (e *Engine) fail(errno int) unsafe.Pointer {
	e.stats.failures.Add(1)
	e.report(errno)
	return nil
}

// report delivers errno to the registered error callback, or logs it when
// show_errors is enabled, up to max_errors times.
func (e *Engine) report(errno int) {
	e.cbMu.RLock()
	fn := e.onError
	e.cbMu.RUnlock()
	if fn != nil {
		fn(errno)
		return
	}
	if !e.OptionIsEnabled(engine.OptionShowErrors) {
		return
	}
	if e.errorsShown.Add(1) > e.OptionGet(engine.OptionMaxErrors) {
		return
	}
	e.log.Error("allocator error", zap.Int("errno", errno), zap.String("code", errnoName(errno)))
}

// tick advances the heartbeat and runs the deferred free callback every
// deferredInterval allocations.
func (e *Engine) tick() {
	if hb := e.heartbeat.Add(1); hb%deferredInterval == 0 {
		e.runDeferred(false, hb)
	}
}

func (e *Engine) runDeferred(force bool, heartbeat uint64) {
	e.cbMu.RLock()
	fn := e.deferred
	e.cbMu.RUnlock()
	if fn == nil {
		return
	}
	// The callback usually frees and may allocate; do not re-enter it.
	if !e.inDeferred.CompareAndSwap(false, true) {
		return
	}
	defer e.inDeferred.Store(false)
	fn(force, heartbeat)
}

func (e *Engine) verbose(msg string, fields ...zap.Field) {
	if e.OptionIsEnabled(engine.OptionVerbose) {
		e.log.Debug(msg, fields...)
	}
}

func errnoName(errno int) string {
	switch errno {
	case engine.EAGAIN:
		return "EAGAIN"
	case engine.ENOMEM:
		return "ENOMEM"
	case engine.EFAULT:
		return "EFAULT"
	case engine.EINVAL:
		return "EINVAL"
	case engine.EOVERFLOW:
		return "EOVERFLOW"
	case engine.ETIMEDOUT:
		return "ETIMEDOUT"
	default:
		return "E?"
	}
}
