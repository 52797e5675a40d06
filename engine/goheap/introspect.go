package goheap

import (
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

// UsableSize returns the capacity of the block at p, or 0 for pointers the
// engine does not own.
func (e *Engine) UsableSize(p unsafe.Pointer) uintptr {
	if p == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.blocks[uintptr(p)]; ok {
		return b.usable
	}
	return 0
}

// GoodSize returns the size class a request of size would get.
func (e *Engine) GoodSize(size uintptr) uintptr {
	if n, ok := e.classes.goodSize(size); ok {
		return n
	}
	return size
}

// CheckOwned reports whether p points into a block of the default heap.
func (e *Engine) CheckOwned(p unsafe.Pointer) bool {
	return e.HeapCheckOwned(0, p)
}

// IsInHeapRegion reports whether p points into any live block or huge page
// reservation.
func (e *Engine) IsInHeapRegion(p unsafe.Pointer) bool {
	if p == nil {
		return false
	}
	addr := uintptr(p)
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.blocks[addr]; ok {
		return true
	}
	for _, b := range e.blocks {
		if b.contains(addr) {
			return true
		}
	}
	for _, r := range e.reserved {
		base := uintptr(unsafe.Pointer(&r[0]))
		if addr >= base && addr < base+uintptr(len(r)) {
			return true
		}
	}
	return false
}

func (e *Engine) Version() int { return Version }

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() engine.Stats {
	return engine.Stats{
		Allocs:        e.stats.allocs.Load(),
		Frees:         e.stats.frees.Load(),
		Reallocs:      e.stats.reallocs.Load(),
		Failures:      e.stats.failures.Load(),
		LiveBlocks:    e.stats.liveBlocks.Load(),
		LiveBytes:     e.stats.liveBytes.Load(),
		PeakBytes:     e.stats.peakBytes.Load(),
		Heaps:         e.stats.heaps.Load(),
		Threads:       e.stats.threads.Load(),
		OSBytes:       e.stats.osBytes.Load(),
		ReservedPages: e.stats.reservedPages.Load(),
	}
}
