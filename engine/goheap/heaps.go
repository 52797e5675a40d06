package goheap

import (
	"runtime/debug"
	"sort"
	"unsafe"

	"go.uber.org/zap"

	"github.com/joshuapare/memkit/engine"
)

// HeapNew creates an empty heap. It returns 0 after Close.
func (e *Engine) HeapNew() engine.Heap {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0
	}
	id := e.nextHeap
	e.nextHeap++
	e.heaps[id] = &heap{id: id, blocks: make(map[uintptr]*block)}
	e.stats.heaps.Add(1)
	e.verbose("heap created", zap.Uint64("heap", uint64(id)))
	return id
}

// HeapDelete removes h. Its live blocks move to the backing heap and stay
// valid. The backing heap cannot be deleted.
func (e *Engine) HeapDelete(h engine.Heap) {
	e.mu.Lock()
	hp := e.detachHeap(h)
	if hp == nil {
		e.mu.Unlock()
		return
	}
	for addr, b := range hp.blocks {
		b.heap = e.backing
		e.backing.blocks[addr] = b
		e.backing.liveBytes += int64(b.usable)
	}
	e.mu.Unlock()
	e.verbose("heap deleted", zap.Uint64("heap", uint64(h)), zap.Int("migrated", len(hp.blocks)))
}

// HeapDestroy removes h and frees every block still in it.
func (e *Engine) HeapDestroy(h engine.Heap) {
	e.mu.Lock()
	hp := e.detachHeap(h)
	if hp == nil {
		e.mu.Unlock()
		return
	}
	live := make([]*block, 0, len(hp.blocks))
	for _, b := range hp.blocks {
		live = append(live, b)
		e.unregister(b)
	}
	e.mu.Unlock()

	for _, b := range live {
		if err := e.release(b); err != nil {
			e.log.Error("releasing OS mapping", zap.Error(err))
		}
	}
	e.verbose("heap destroyed", zap.Uint64("heap", uint64(h)), zap.Int("freed", len(live)))
}

// detachHeap unlinks h from the engine, resetting the default heap when
// needed. Caller holds mu.
func (e *Engine) detachHeap(h engine.Heap) *heap {
	hp := e.heaps[h]
	if hp == nil || hp == e.backing {
		return nil
	}
	delete(e.heaps, h)
	if e.def == hp {
		e.def = e.backing
	}
	e.stats.heaps.Add(-1)
	return hp
}

// HeapSetDefault makes h the target of the unscoped entry points and
// returns the previous default. Unknown handles are ignored and 0 is
// returned.
func (e *Engine) HeapSetDefault(h engine.Heap) engine.Heap {
	e.mu.Lock()
	defer e.mu.Unlock()
	hp := e.heaps[h]
	if hp == nil {
		return 0
	}
	prev := e.def.id
	e.def = hp
	return prev
}

func (e *Engine) HeapGetDefault() engine.Heap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.def.id
}

func (e *Engine) HeapGetBacking() engine.Heap {
	return e.backing.id
}

// HeapCollect runs the deferred free callback. A forced collection also
// returns free memory to the OS.
func (e *Engine) HeapCollect(h engine.Heap, force bool) {
	e.runDeferred(force, e.heartbeat.Load())
	if force {
		debug.FreeOSMemory()
	}
}

// HeapVisitBlocks reports the areas of h, grouped by block size, and when
// visitAll is set every block in them. fn runs without engine locks held.
func (e *Engine) HeapVisitBlocks(h engine.Heap, visitAll bool, fn engine.BlockVisitFunc) bool {
	if fn == nil {
		return false
	}
	e.mu.Lock()
	hp := e.resolveHeap(h)
	if hp == nil {
		e.mu.Unlock()
		return false
	}
	id := hp.id
	bySize := make(map[uintptr][]*block)
	for _, b := range hp.blocks {
		bySize[b.usable] = append(bySize[b.usable], b)
	}
	e.mu.Unlock()

	sizes := make([]uintptr, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

	for _, size := range sizes {
		blocks := bySize[size]
		sort.Slice(blocks, func(i, j int) bool { return blocks[i].addr() < blocks[j].addr() })
		area := engine.Area{
			Blocks:    blocks[0].ptr,
			Used:      uintptr(len(blocks)),
			BlockSize: size,
		}
		for _, b := range blocks {
			area.Reserved += uintptr(cap(b.mem))
			area.Committed += uintptr(len(b.mem))
		}
		if !fn(id, &area, nil, 0) {
			return false
		}
		if !visitAll {
			continue
		}
		for _, b := range blocks {
			if !fn(id, &area, b.ptr, size) {
				return false
			}
		}
	}
	return true
}

// HeapContainsBlock reports whether p is the start of a live block in h.
func (e *Engine) HeapContainsBlock(h engine.Heap, p unsafe.Pointer) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	hp := e.resolveHeap(h)
	if hp == nil || p == nil {
		return false
	}
	_, ok := hp.blocks[uintptr(p)]
	return ok
}

// HeapCheckOwned reports whether p points anywhere inside a live block of h.
func (e *Engine) HeapCheckOwned(h engine.Heap, p unsafe.Pointer) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	hp := e.resolveHeap(h)
	if hp == nil || p == nil {
		return false
	}
	addr := uintptr(p)
	if _, ok := hp.blocks[addr]; ok {
		return true
	}
	for _, b := range hp.blocks {
		if b.contains(addr) {
			return true
		}
	}
	return false
}

func (e *Engine) HeapMalloc(h engine.Heap, size uintptr) unsafe.Pointer {
	return e.allocate(h, size, 1, 0)
}

func (e *Engine) HeapZalloc(h engine.Heap, size uintptr) unsafe.Pointer {
	return e.allocate(h, size, 1, 0)
}

func (e *Engine) HeapCalloc(h engine.Heap, count, size uintptr) unsafe.Pointer {
	return e.HeapCallocAlignedAt(h, count, size, 1, 0)
}

func (e *Engine) HeapMallocn(h engine.Heap, count, size uintptr) unsafe.Pointer {
	n, ok := e.count(count, size)
	if !ok {
		return nil
	}
	return e.allocate(h, n, 1, 0)
}

func (e *Engine) HeapMallocSmall(h engine.Heap, size uintptr) unsafe.Pointer {
	if size > SmallSizeMax {
		return e.fail(engine.EINVAL)
	}
	return e.allocate(h, size, 1, 0)
}

func (e *Engine) HeapRealloc(h engine.Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return e.reallocate(h, p, newSize, 1, 0, false)
}

func (e *Engine) HeapReallocn(h engine.Heap, p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	n, ok := e.count(count, size)
	if !ok {
		return nil
	}
	return e.reallocate(h, p, n, 1, 0, false)
}

func (e *Engine) HeapReallocf(h engine.Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	np := e.reallocate(h, p, newSize, 1, 0, false)
	if np == nil && p != nil {
		e.free(p)
	}
	return np
}

func (e *Engine) HeapRezalloc(h engine.Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return e.reallocate(h, p, newSize, 1, 0, true)
}

func (e *Engine) HeapRecalloc(h engine.Heap, p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return e.HeapRecallocAlignedAt(h, p, count, size, 1, 0)
}

func (e *Engine) HeapMallocAligned(h engine.Heap, size, align uintptr) unsafe.Pointer {
	return e.allocate(h, size, align, 0)
}

func (e *Engine) HeapMallocAlignedAt(h engine.Heap, size, align, offset uintptr) unsafe.Pointer {
	return e.allocate(h, size, align, offset)
}

func (e *Engine) HeapZallocAligned(h engine.Heap, size, align uintptr) unsafe.Pointer {
	return e.allocate(h, size, align, 0)
}

func (e *Engine) HeapZallocAlignedAt(h engine.Heap, size, align, offset uintptr) unsafe.Pointer {
	return e.allocate(h, size, align, offset)
}

func (e *Engine) HeapCallocAligned(h engine.Heap, count, size, align uintptr) unsafe.Pointer {
	return e.HeapCallocAlignedAt(h, count, size, align, 0)
}

func (e *Engine) HeapCallocAlignedAt(h engine.Heap, count, size, align, offset uintptr) unsafe.Pointer {
	n, ok := e.count(count, size)
	if !ok {
		return nil
	}
	return e.allocate(h, n, align, offset)
}

func (e *Engine) HeapReallocAligned(h engine.Heap, p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return e.reallocate(h, p, newSize, align, 0, false)
}

func (e *Engine) HeapReallocAlignedAt(h engine.Heap, p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return e.reallocate(h, p, newSize, align, offset, false)
}

func (e *Engine) HeapRezallocAligned(h engine.Heap, p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return e.reallocate(h, p, newSize, align, 0, true)
}

func (e *Engine) HeapRezallocAlignedAt(h engine.Heap, p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return e.reallocate(h, p, newSize, align, offset, true)
}

func (e *Engine) HeapRecallocAligned(h engine.Heap, p unsafe.Pointer, count, size, align uintptr) unsafe.Pointer {
	return e.HeapRecallocAlignedAt(h, p, count, size, align, 0)
}

func (e *Engine) HeapRecallocAlignedAt(h engine.Heap, p unsafe.Pointer, count, size, align, offset uintptr) unsafe.Pointer {
	n, ok := e.count(count, size)
	if !ok {
		return nil
	}
	return e.reallocate(h, p, n, align, offset, true)
}
