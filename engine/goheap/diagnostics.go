package goheap

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/internal/osmem"
)

// Collect runs a collection on the default heap.
func (e *Engine) Collect(force bool) {
	e.HeapCollect(0, force)
}

// RegisterDeferredFree installs fn, replacing any previous callback. nil
// removes it.
func (e *Engine) RegisterDeferredFree(fn engine.DeferredFreeFunc) {
	e.cbMu.Lock()
	e.deferred = fn
	e.cbMu.Unlock()
}

// RegisterOutput redirects statistics and messages to fn. With nil they go
// to the engine logger at info level.
func (e *Engine) RegisterOutput(fn engine.OutputFunc) {
	e.cbMu.Lock()
	e.output = fn
	e.cbMu.Unlock()
}

// RegisterError installs fn to receive errno codes. With an error callback
// installed nothing is logged.
func (e *Engine) RegisterError(fn engine.ErrorFunc) {
	e.cbMu.Lock()
	e.onError = fn
	e.cbMu.Unlock()
}

// emit writes msg to fn, the registered output, or the logger.
func (e *Engine) emit(fn engine.OutputFunc, msg string) {
	if fn == nil {
		e.cbMu.RLock()
		fn = e.output
		e.cbMu.RUnlock()
	}
	if fn == nil {
		e.log.Info(msg)
		return
	}
	fn(msg)
}

// StatsReset zeroes the event counters. Live and heap counts are kept and
// the peak restarts from the current live bytes.
func (e *Engine) StatsReset() {
	e.stats.allocs.Store(0)
	e.stats.frees.Store(0)
	e.stats.reallocs.Store(0)
	e.stats.failures.Store(0)
	e.stats.peakBytes.Store(e.stats.liveBytes.Load())

	e.mu.Lock()
	for _, h := range e.heaps {
		h.allocs, h.frees = 0, 0
	}
	e.mu.Unlock()
}

// StatsMerge folds the default heap's local counters into the engine
// totals, which already include them, and restarts the local view shown
// by ThreadStatsPrintOut and the last line of StatsPrintOut.
func (e *Engine) StatsMerge() {
	e.mu.Lock()
	e.def.allocs, e.def.frees = 0, 0
	e.mu.Unlock()
}

// StatsPrint writes the engine statistics to the registered output.
func (e *Engine) StatsPrint() {
	e.StatsPrintOut(nil)
}

func (e *Engine) StatsPrintOut(fn engine.OutputFunc) {
	for _, line := range formatStats(e.Stats()) {
		e.emit(fn, line)
	}
	e.emit(fn, e.defaultHeapLine())
}

// ThreadStatsPrintOut writes the default heap's local counters.
func (e *Engine) ThreadStatsPrintOut(fn engine.OutputFunc) {
	e.emit(fn, e.defaultHeapLine())
}

func (e *Engine) defaultHeapLine() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.def
	return fmt.Sprintf("heap %d: allocs %d, frees %d, live %d bytes in %d blocks",
		h.id, h.allocs, h.frees, h.liveBytes, len(h.blocks))
}

func formatStats(s engine.Stats) []string {
	return []string{
		fmt.Sprintf("allocs %d, frees %d, reallocs %d, failures %d",
			s.Allocs, s.Frees, s.Reallocs, s.Failures),
		fmt.Sprintf("live %d bytes in %d blocks, peak %d bytes",
			s.LiveBytes, s.LiveBlocks, s.PeakBytes),
		fmt.Sprintf("heaps %d, threads %d, os %d bytes, huge pages %d",
			s.Heaps, s.Threads, s.OSBytes, s.ReservedPages),
	}
}

// ProcessInit runs once per engine. It counts the calling thread and
// reserves the huge pages requested by reserve_huge_os_pages.
func (e *Engine) ProcessInit() {
	e.processOnce.Do(func() {
		e.stats.threads.Store(1)
		pages := e.OptionGet(engine.OptionReserveHugeOSPages)
		if pages <= 0 {
			return
		}
		// Allow half a second per page, as the native engine does.
		reserved, errno := e.ReserveHugeOSPages(uintptr(pages), float64(pages)*0.5)
		if errno != 0 {
			e.log.Warn("huge page reservation incomplete",
				zap.Int64("requested", pages),
				zap.Uint64("reserved", uint64(reserved)),
				zap.String("code", errnoName(errno)))
		}
	})
}

func (e *Engine) ThreadInit() {
	e.stats.threads.Add(1)
}

// ThreadDone undoes ThreadInit. Extra calls are ignored.
func (e *Engine) ThreadDone() {
	for {
		n := e.stats.threads.Load()
		if n <= 0 || e.stats.threads.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// ReserveHugeOSPages reserves up to pages 1GiB pages, giving up after
// maxSecs seconds.
func (e *Engine) ReserveHugeOSPages(pages uintptr, maxSecs float64) (uintptr, int) {
	deadline := time.Now().Add(time.Duration(maxSecs * float64(time.Second)))
	return e.reserve(pages, -1, deadline)
}

// ReserveHugeOSPagesAt reserves pages 1GiB pages bound to numaNode.
func (e *Engine) ReserveHugeOSPagesAt(pages uintptr, numaNode int, timeoutMsecs uintptr) int {
	deadline := time.Now().Add(time.Duration(timeoutMsecs) * time.Millisecond)
	_, errno := e.reserve(pages, numaNode, deadline)
	return errno
}

// ReserveHugeOSPagesInterleave spreads pages evenly over numaNodes nodes.
// numaNodes 0 means one node.
func (e *Engine) ReserveHugeOSPagesInterleave(pages, numaNodes, timeoutMsecs uintptr) int {
	if pages == 0 {
		return 0
	}
	if numaNodes == 0 {
		numaNodes = 1
	}
	perNode := pages / numaNodes
	extra := pages % numaNodes
	timeout := timeoutMsecs/numaNodes + 50
	for node := uintptr(0); node < numaNodes && pages > 0; node++ {
		n := perNode
		if node < extra {
			n++
		}
		if errno := e.ReserveHugeOSPagesAt(n, int(node), timeout); errno != 0 {
			return errno
		}
		pages -= n
	}
	return 0
}

func (e *Engine) reserve(pages uintptr, numaNode int, deadline time.Time) (uintptr, int) {
	if pages == 0 {
		return 0, 0
	}
	regions, err := osmem.ReserveHuge(int(pages), numaNode, deadline)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		for _, r := range regions {
			_ = osmem.Unmap(r)
		}
		return 0, engine.EINVAL
	}
	e.reserved = append(e.reserved, regions...)
	e.mu.Unlock()
	e.stats.reservedPages.Add(int64(len(regions)))

	reserved := uintptr(len(regions))
	switch {
	case err == nil:
		e.verbose("reserved huge OS pages", zap.Uint64("pages", uint64(reserved)), zap.Int("node", numaNode))
		return reserved, 0
	case errors.Is(err, osmem.ErrTimeout):
		return reserved, engine.ETIMEDOUT
	default:
		e.verbose("huge page reservation failed", zap.Error(err))
		return reserved, engine.ENOMEM
	}
}
