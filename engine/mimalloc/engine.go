//go:build cgo && mimalloc

package mimalloc

/*
#cgo LDFLAGS: -lmimalloc
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

// Engine forwards every call to libmimalloc.
type Engine struct{}

var _ engine.Engine = (*Engine)(nil)

// Registered callbacks are process-wide, like mimalloc's own.
var (
	cbMu     sync.Mutex
	deferred cgo.Handle
	output   cgo.Handle
	onError  cgo.Handle
)

// New returns an engine over the process allocator.
func New() *Engine {
	return &Engine{}
}

func sz(n uintptr) C.size_t { return C.size_t(n) }

// heapOf converts a handle; 0 selects the default heap.
func heapOf(h engine.Heap) *C.mi_heap_t {
	if h == 0 {
		return C.mi_heap_get_default()
	}
	return (*C.mi_heap_t)(unsafe.Pointer(uintptr(h)))
}

func handleOf(h *C.mi_heap_t) engine.Heap {
	return engine.Heap(uintptr(unsafe.Pointer(h)))
}

// swap replaces *slot with a handle for v (0 for nil) and releases the old one.
func swap(slot *cgo.Handle, v any, isNil bool) C.uintptr_t {
	if *slot != 0 {
		slot.Delete()
		*slot = 0
	}
	if !isNil {
		*slot = cgo.NewHandle(v)
	}
	return C.uintptr_t(*slot)
}

// Core

func (*Engine) Malloc(size uintptr) unsafe.Pointer { return C.mi_malloc(sz(size)) }

func (*Engine) Zalloc(size uintptr) unsafe.Pointer { return C.mi_zalloc(sz(size)) }

func (*Engine) Realloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_realloc(p, sz(newSize))
}

func (*Engine) Free(p unsafe.Pointer) { C.mi_free(p) }

func (*Engine) MallocAligned(size, align uintptr) unsafe.Pointer {
	return C.mi_malloc_aligned(sz(size), sz(align))
}

func (*Engine) ZallocAligned(size, align uintptr) unsafe.Pointer {
	return C.mi_zalloc_aligned(sz(size), sz(align))
}

func (*Engine) ReallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return C.mi_realloc_aligned(p, sz(newSize), sz(align))
}

func (*Engine) MallocAlignedAt(size, align, offset uintptr) unsafe.Pointer {
	return C.mi_malloc_aligned_at(sz(size), sz(align), sz(offset))
}

func (*Engine) ZallocAlignedAt(size, align, offset uintptr) unsafe.Pointer {
	return C.mi_zalloc_aligned_at(sz(size), sz(align), sz(offset))
}

// Counted

func (*Engine) Calloc(count, size uintptr) unsafe.Pointer { return C.mi_calloc(sz(count), sz(size)) }

func (*Engine) Mallocn(count, size uintptr) unsafe.Pointer {
	return C.mi_mallocn(sz(count), sz(size))
}

func (*Engine) Reallocn(p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return C.mi_reallocn(p, sz(count), sz(size))
}

func (*Engine) Reallocf(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_reallocf(p, sz(newSize))
}

func (*Engine) Rezalloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_rezalloc(p, sz(newSize))
}

func (*Engine) Recalloc(p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return C.mi_recalloc(p, sz(count), sz(size))
}

func (*Engine) MallocSmall(size uintptr) unsafe.Pointer { return C.mi_malloc_small(sz(size)) }

func (*Engine) ZallocSmall(size uintptr) unsafe.Pointer { return C.mi_zalloc_small(sz(size)) }

func (*Engine) Expand(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_expand(p, sz(newSize))
}

func (*Engine) CallocAligned(count, size, align uintptr) unsafe.Pointer {
	return C.mi_calloc_aligned(sz(count), sz(size), sz(align))
}

func (*Engine) CallocAlignedAt(count, size, align, offset uintptr) unsafe.Pointer {
	return C.mi_calloc_aligned_at(sz(count), sz(size), sz(align), sz(offset))
}

func (*Engine) ReallocAlignedAt(p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return C.mi_realloc_aligned_at(p, sz(newSize), sz(align), sz(offset))
}

func (*Engine) RezallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return C.mi_rezalloc_aligned(p, sz(newSize), sz(align))
}

func (*Engine) RezallocAlignedAt(p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return C.mi_rezalloc_aligned_at(p, sz(newSize), sz(align), sz(offset))
}

func (*Engine) RecallocAligned(p unsafe.Pointer, count, size, align uintptr) unsafe.Pointer {
	return C.mi_recalloc_aligned(p, sz(count), sz(size), sz(align))
}

func (*Engine) RecallocAlignedAt(p unsafe.Pointer, count, size, align, offset uintptr) unsafe.Pointer {
	return C.mi_recalloc_aligned_at(p, sz(count), sz(size), sz(align), sz(offset))
}

// Strings

func (*Engine) Strdup(s unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(C.mi_strdup((*C.char)(s)))
}

func (*Engine) Strndup(s unsafe.Pointer, n uintptr) unsafe.Pointer {
	return unsafe.Pointer(C.mi_strndup((*C.char)(s), sz(n)))
}

func (*Engine) Realpath(fname, resolved unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(C.mi_realpath((*C.char)(fname), (*C.char)(resolved)))
}

// Introspection

func (*Engine) UsableSize(p unsafe.Pointer) uintptr { return uintptr(C.mi_usable_size(p)) }

func (*Engine) GoodSize(size uintptr) uintptr { return uintptr(C.mi_good_size(sz(size))) }

func (*Engine) CheckOwned(p unsafe.Pointer) bool { return bool(C.mi_check_owned(p)) }

func (*Engine) IsInHeapRegion(p unsafe.Pointer) bool { return bool(C.mi_is_in_heap_region(p)) }

func (*Engine) Version() int { return int(C.mi_version()) }

// Heaps

func (*Engine) HeapNew() engine.Heap { return handleOf(C.mi_heap_new()) }

func (*Engine) HeapDelete(h engine.Heap) { C.mi_heap_delete(heapOf(h)) }

func (*Engine) HeapDestroy(h engine.Heap) { C.mi_heap_destroy(heapOf(h)) }

func (*Engine) HeapSetDefault(h engine.Heap) engine.Heap {
	return handleOf(C.mi_heap_set_default(heapOf(h)))
}

func (*Engine) HeapGetDefault() engine.Heap { return handleOf(C.mi_heap_get_default()) }

func (*Engine) HeapGetBacking() engine.Heap { return handleOf(C.mi_heap_get_backing()) }

func (*Engine) HeapCollect(h engine.Heap, force bool) { C.mi_heap_collect(heapOf(h), C.bool(force)) }

// HeapVisitBlocks runs fn on the calling thread, inside mimalloc.
func (*Engine) HeapVisitBlocks(h engine.Heap, visitAll bool, fn engine.BlockVisitFunc) bool {
	if fn == nil {
		return false
	}
	hp := heapOf(h)
	handle := cgo.NewHandle(&visit{heap: handleOf(hp), fn: fn})
	defer handle.Delete()
	return bool(C.memkit_mi_visit(hp, C.bool(visitAll), C.uintptr_t(handle)))
}

func (*Engine) HeapContainsBlock(h engine.Heap, p unsafe.Pointer) bool {
	return bool(C.mi_heap_contains_block(heapOf(h), p))
}

func (*Engine) HeapCheckOwned(h engine.Heap, p unsafe.Pointer) bool {
	return bool(C.mi_heap_check_owned(heapOf(h), p))
}

func (*Engine) HeapMalloc(h engine.Heap, size uintptr) unsafe.Pointer {
	return C.mi_heap_malloc(heapOf(h), sz(size))
}

func (*Engine) HeapZalloc(h engine.Heap, size uintptr) unsafe.Pointer {
	return C.mi_heap_zalloc(heapOf(h), sz(size))
}

func (*Engine) HeapCalloc(h engine.Heap, count, size uintptr) unsafe.Pointer {
	return C.mi_heap_calloc(heapOf(h), sz(count), sz(size))
}

func (*Engine) HeapMallocn(h engine.Heap, count, size uintptr) unsafe.Pointer {
	return C.mi_heap_mallocn(heapOf(h), sz(count), sz(size))
}

func (*Engine) HeapMallocSmall(h engine.Heap, size uintptr) unsafe.Pointer {
	return C.mi_heap_malloc_small(heapOf(h), sz(size))
}

func (*Engine) HeapRealloc(h engine.Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_heap_realloc(heapOf(h), p, sz(newSize))
}

func (*Engine) HeapReallocn(h engine.Heap, p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return C.mi_heap_reallocn(heapOf(h), p, sz(count), sz(size))
}

func (*Engine) HeapReallocf(h engine.Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_heap_reallocf(heapOf(h), p, sz(newSize))
}

func (*Engine) HeapRezalloc(h engine.Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return C.mi_heap_rezalloc(heapOf(h), p, sz(newSize))
}

func (*Engine) HeapRecalloc(h engine.Heap, p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return C.mi_heap_recalloc(heapOf(h), p, sz(count), sz(size))
}

func (*Engine) HeapStrdup(h engine.Heap, s unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(C.mi_heap_strdup(heapOf(h), (*C.char)(s)))
}

func (*Engine) HeapStrndup(h engine.Heap, s unsafe.Pointer, n uintptr) unsafe.Pointer {
	return unsafe.Pointer(C.mi_heap_strndup(heapOf(h), (*C.char)(s), sz(n)))
}

func (*Engine) HeapRealpath(h engine.Heap, fname, resolved unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(C.mi_heap_realpath(heapOf(h), (*C.char)(fname), (*C.char)(resolved)))
}

func (*Engine) HeapMallocAligned(h engine.Heap, size, align uintptr) unsafe.Pointer {
	return C.mi_heap_malloc_aligned(heapOf(h), sz(size), sz(align))
}

func (*Engine) HeapMallocAlignedAt(h engine.Heap, size, align, offset uintptr) unsafe.Pointer {
	return C.mi_heap_malloc_aligned_at(heapOf(h), sz(size), sz(align), sz(offset))
}

func (*Engine) HeapZallocAligned(h engine.Heap, size, align uintptr) unsafe.Pointer {
	return C.mi_heap_zalloc_aligned(heapOf(h), sz(size), sz(align))
}

func (*Engine) HeapZallocAlignedAt(h engine.Heap, size, align, offset uintptr) unsafe.Pointer {
	return C.mi_heap_zalloc_aligned_at(heapOf(h), sz(size), sz(align), sz(offset))
}

func (*Engine) HeapCallocAligned(h engine.Heap, count, size, align uintptr) unsafe.Pointer {
	return C.mi_heap_calloc_aligned(heapOf(h), sz(count), sz(size), sz(align))
}

func (*Engine) HeapCallocAlignedAt(h engine.Heap, count, size, align, offset uintptr) unsafe.Pointer {
	return C.mi_heap_calloc_aligned_at(heapOf(h), sz(count), sz(size), sz(align), sz(offset))
}

func (*Engine) HeapReallocAligned(h engine.Heap, p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return C.mi_heap_realloc_aligned(heapOf(h), p, sz(newSize), sz(align))
}

func (*Engine) HeapReallocAlignedAt(h engine.Heap, p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return C.mi_heap_realloc_aligned_at(heapOf(h), p, sz(newSize), sz(align), sz(offset))
}

func (*Engine) HeapRezallocAligned(h engine.Heap, p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return C.mi_heap_rezalloc_aligned(heapOf(h), p, sz(newSize), sz(align))
}

func (*Engine) HeapRezallocAlignedAt(h engine.Heap, p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return C.mi_heap_rezalloc_aligned_at(heapOf(h), p, sz(newSize), sz(align), sz(offset))
}

func (*Engine) HeapRecallocAligned(h engine.Heap, p unsafe.Pointer, count, size, align uintptr) unsafe.Pointer {
	return C.mi_heap_recalloc_aligned(heapOf(h), p, sz(count), sz(size), sz(align))
}

func (*Engine) HeapRecallocAlignedAt(h engine.Heap, p unsafe.Pointer, count, size, align, offset uintptr) unsafe.Pointer {
	return C.mi_heap_recalloc_aligned_at(heapOf(h), p, sz(count), sz(size), sz(align), sz(offset))
}

// Diagnostics

func (*Engine) Collect(force bool) { C.mi_collect(C.bool(force)) }

func (*Engine) RegisterDeferredFree(fn engine.DeferredFreeFunc) {
	cbMu.Lock()
	defer cbMu.Unlock()
	C.memkit_mi_register_deferred(swap(&deferred, fn, fn == nil))
}

func (*Engine) RegisterOutput(fn engine.OutputFunc) {
	cbMu.Lock()
	defer cbMu.Unlock()
	C.memkit_mi_register_output(swap(&output, fn, fn == nil))
}

func (*Engine) RegisterError(fn engine.ErrorFunc) {
	cbMu.Lock()
	defer cbMu.Unlock()
	C.memkit_mi_register_error(swap(&onError, fn, fn == nil))
}

func (*Engine) StatsReset() { C.mi_stats_reset() }

func (*Engine) StatsMerge() { C.mi_stats_merge() }

func (*Engine) StatsPrint() { C.mi_stats_print_out(nil, nil) }

func (*Engine) StatsPrintOut(fn engine.OutputFunc) {
	printOut(fn, func(h C.uintptr_t) { C.memkit_mi_stats_print_out(h) })
}

func (*Engine) ThreadStatsPrintOut(fn engine.OutputFunc) {
	printOut(fn, func(h C.uintptr_t) { C.memkit_mi_thread_stats_print_out(h) })
}

// printOut routes one print call to fn, or to the registered output when
// fn is nil.
func printOut(fn engine.OutputFunc, call func(C.uintptr_t)) {
	if fn == nil {
		call(0)
		return
	}
	h := cgo.NewHandle(fn)
	defer h.Delete()
	call(C.uintptr_t(h))
}

func (*Engine) ProcessInit() { C.mi_process_init() }

func (*Engine) ThreadInit() { C.mi_thread_init() }

func (*Engine) ThreadDone() { C.mi_thread_done() }

func (*Engine) ReserveHugeOSPages(pages uintptr, maxSecs float64) (uintptr, int) {
	var reserved C.size_t
	errno := C.mi_reserve_huge_os_pages(sz(pages), C.double(maxSecs), &reserved)
	return uintptr(reserved), int(errno)
}

func (*Engine) ReserveHugeOSPagesAt(pages uintptr, numaNode int, timeoutMsecs uintptr) int {
	return int(C.mi_reserve_huge_os_pages_at(sz(pages), C.int(numaNode), sz(timeoutMsecs)))
}

func (*Engine) ReserveHugeOSPagesInterleave(pages, numaNodes, timeoutMsecs uintptr) int {
	return int(C.mi_reserve_huge_os_pages_interleave(sz(pages), sz(numaNodes), sz(timeoutMsecs)))
}
