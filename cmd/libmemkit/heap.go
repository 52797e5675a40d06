//go:build cgo

package main

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include "callbacks.h"
*/
import "C"

import (
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

//export memkit_mem_heap_new
func memkit_mem_heap_new() C.uintptr_t { return C.uintptr_t(lib().HeapNew()) }

//export memkit_mem_heap_delete
func memkit_mem_heap_delete(h C.uintptr_t) { lib().HeapDelete(heapOf(h)) }

//export memkit_mem_heap_destroy
func memkit_mem_heap_destroy(h C.uintptr_t) { lib().HeapDestroy(heapOf(h)) }

//export memkit_mem_heap_set_default
func memkit_mem_heap_set_default(h C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(lib().HeapSetDefault(heapOf(h)))
}

//export memkit_mem_heap_get_default
func memkit_mem_heap_get_default() C.uintptr_t { return C.uintptr_t(lib().HeapGetDefault()) }

//export memkit_mem_heap_get_backing
func memkit_mem_heap_get_backing() C.uintptr_t { return C.uintptr_t(lib().HeapGetBacking()) }

//export memkit_mem_heap_collect
func memkit_mem_heap_collect(h C.uintptr_t, force C.bool) { lib().HeapCollect(heapOf(h), bool(force)) }

//export memkit_mem_heap_visit_blocks
func memkit_mem_heap_visit_blocks(h C.uintptr_t, visitAll C.bool, fn C.memkit_block_visit_fun, arg unsafe.Pointer) C.bool {
	if fn == nil {
		return false
	}
	return C.bool(lib().HeapVisitBlocks(heapOf(h), bool(visitAll),
		func(heap engine.Heap, area *engine.Area, block unsafe.Pointer, blockSize uintptr) bool {
			a := C.memkit_heap_area_t{
				blocks:     area.Blocks,
				reserved:   C.size_t(area.Reserved),
				committed:  C.size_t(area.Committed),
				used:       C.size_t(area.Used),
				block_size: C.size_t(area.BlockSize),
			}
			return bool(C.memkit_call_visit(fn, C.uintptr_t(heap), &a, block, C.size_t(blockSize), arg))
		}))
}

//export memkit_mem_heap_contains_block
func memkit_mem_heap_contains_block(h C.uintptr_t, p unsafe.Pointer) C.bool {
	return C.bool(lib().HeapContainsBlock(heapOf(h), p))
}

//export memkit_mem_heap_check_owned
func memkit_mem_heap_check_owned(h C.uintptr_t, p unsafe.Pointer) C.bool {
	return C.bool(lib().HeapCheckOwned(heapOf(h), p))
}

//export memkit_mem_heap_malloc
func memkit_mem_heap_malloc(h C.uintptr_t, size C.size_t) unsafe.Pointer {
	return lib().HeapMalloc(heapOf(h), sz(size))
}

//export memkit_mem_heap_zalloc
func memkit_mem_heap_zalloc(h C.uintptr_t, size C.size_t) unsafe.Pointer {
	return lib().HeapZalloc(heapOf(h), sz(size))
}

//export memkit_mem_heap_calloc
func memkit_mem_heap_calloc(h C.uintptr_t, count, size C.size_t) unsafe.Pointer {
	return lib().HeapCalloc(heapOf(h), sz(count), sz(size))
}

//export memkit_mem_heap_mallocn
func memkit_mem_heap_mallocn(h C.uintptr_t, count, size C.size_t) unsafe.Pointer {
	return lib().HeapMallocn(heapOf(h), sz(count), sz(size))
}

//export memkit_mem_heap_malloc_small
func memkit_mem_heap_malloc_small(h C.uintptr_t, size C.size_t) unsafe.Pointer {
	return lib().HeapMallocSmall(heapOf(h), sz(size))
}

//export memkit_mem_heap_realloc
func memkit_mem_heap_realloc(h C.uintptr_t, p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().HeapRealloc(heapOf(h), p, sz(newSize))
}

//export memkit_mem_heap_reallocn
func memkit_mem_heap_reallocn(h C.uintptr_t, p unsafe.Pointer, count, size C.size_t) unsafe.Pointer {
	return lib().HeapReallocn(heapOf(h), p, sz(count), sz(size))
}

//export memkit_mem_heap_reallocf
func memkit_mem_heap_reallocf(h C.uintptr_t, p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().HeapReallocf(heapOf(h), p, sz(newSize))
}

//export memkit_mem_heap_rezalloc
func memkit_mem_heap_rezalloc(h C.uintptr_t, p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().HeapRezalloc(heapOf(h), p, sz(newSize))
}

//export memkit_mem_heap_recalloc
func memkit_mem_heap_recalloc(h C.uintptr_t, p unsafe.Pointer, count, size C.size_t) unsafe.Pointer {
	return lib().HeapRecalloc(heapOf(h), p, sz(count), sz(size))
}

//export memkit_mem_heap_strdup
func memkit_mem_heap_strdup(h C.uintptr_t, s *C.char) *C.char {
	return (*C.char)(lib().HeapStrdup(heapOf(h), unsafe.Pointer(s)))
}

//export memkit_mem_heap_strndup
func memkit_mem_heap_strndup(h C.uintptr_t, s *C.char, n C.size_t) *C.char {
	return (*C.char)(lib().HeapStrndup(heapOf(h), unsafe.Pointer(s), sz(n)))
}

//export memkit_mem_heap_realpath
func memkit_mem_heap_realpath(h C.uintptr_t, fname, resolved *C.char) *C.char {
	return (*C.char)(lib().HeapRealpath(heapOf(h), unsafe.Pointer(fname), unsafe.Pointer(resolved)))
}

//export memkit_mem_heap_malloc_aligned
func memkit_mem_heap_malloc_aligned(h C.uintptr_t, size, align C.size_t) unsafe.Pointer {
	return lib().HeapMallocAligned(heapOf(h), sz(size), sz(align))
}

//export memkit_mem_heap_malloc_aligned_at
func memkit_mem_heap_malloc_aligned_at(h C.uintptr_t, size, align, offset C.size_t) unsafe.Pointer {
	return lib().HeapMallocAlignedAt(heapOf(h), sz(size), sz(align), sz(offset))
}

//export memkit_mem_heap_zalloc_aligned
func memkit_mem_heap_zalloc_aligned(h C.uintptr_t, size, align C.size_t) unsafe.Pointer {
	return lib().HeapZallocAligned(heapOf(h), sz(size), sz(align))
}

//export memkit_mem_heap_zalloc_aligned_at
func memkit_mem_heap_zalloc_aligned_at(h C.uintptr_t, size, align, offset C.size_t) unsafe.Pointer {
	return lib().HeapZallocAlignedAt(heapOf(h), sz(size), sz(align), sz(offset))
}

//export memkit_mem_heap_calloc_aligned
func memkit_mem_heap_calloc_aligned(h C.uintptr_t, count, size, align C.size_t) unsafe.Pointer {
	return lib().HeapCallocAligned(heapOf(h), sz(count), sz(size), sz(align))
}

//export memkit_mem_heap_calloc_aligned_at
func memkit_mem_heap_calloc_aligned_at(h C.uintptr_t, count, size, align, offset C.size_t) unsafe.Pointer {
	return lib().HeapCallocAlignedAt(heapOf(h), sz(count), sz(size), sz(align), sz(offset))
}

//export memkit_mem_heap_realloc_aligned
func memkit_mem_heap_realloc_aligned(h C.uintptr_t, p unsafe.Pointer, newSize, align C.size_t) unsafe.Pointer {
	return lib().HeapReallocAligned(heapOf(h), p, sz(newSize), sz(align))
}

//export memkit_mem_heap_realloc_aligned_at
func memkit_mem_heap_realloc_aligned_at(h C.uintptr_t, p unsafe.Pointer, newSize, align, offset C.size_t) unsafe.Pointer {
	return lib().HeapReallocAlignedAt(heapOf(h), p, sz(newSize), sz(align), sz(offset))
}

//export memkit_mem_heap_rezalloc_aligned
func memkit_mem_heap_rezalloc_aligned(h C.uintptr_t, p unsafe.Pointer, newSize, align C.size_t) unsafe.Pointer {
	return lib().HeapRezallocAligned(heapOf(h), p, sz(newSize), sz(align))
}

//export memkit_mem_heap_rezalloc_aligned_at
func memkit_mem_heap_rezalloc_aligned_at(h C.uintptr_t, p unsafe.Pointer, newSize, align, offset C.size_t) unsafe.Pointer {
	return lib().HeapRezallocAlignedAt(heapOf(h), p, sz(newSize), sz(align), sz(offset))
}

//export memkit_mem_heap_recalloc_aligned
func memkit_mem_heap_recalloc_aligned(h C.uintptr_t, p unsafe.Pointer, count, size, align C.size_t) unsafe.Pointer {
	return lib().HeapRecallocAligned(heapOf(h), p, sz(count), sz(size), sz(align))
}

//export memkit_mem_heap_recalloc_aligned_at
func memkit_mem_heap_recalloc_aligned_at(h C.uintptr_t, p unsafe.Pointer, count, size, align, offset C.size_t) unsafe.Pointer {
	return lib().HeapRecallocAlignedAt(heapOf(h), p, sz(count), sz(size), sz(align), sz(offset))
}
