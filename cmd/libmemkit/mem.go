//go:build cgo

package main

/*
#include <stdbool.h>
#include <stddef.h>
*/
import "C"

import "unsafe"

// Router entry points. A NULL result means out of memory, an invalid
// alignment, or an alignment above the platform ceiling.

//export memkit_mem_alloc
func memkit_mem_alloc(size, align C.size_t) unsafe.Pointer {
	l, ok := layoutOf(sz(size), sz(align))
	if !ok {
		return nil
	}
	return lib().Router().Alloc(l)
}

//export memkit_mem_alloc_zeroed
func memkit_mem_alloc_zeroed(size, align C.size_t) unsafe.Pointer {
	l, ok := layoutOf(sz(size), sz(align))
	if !ok {
		return nil
	}
	return lib().Router().AllocZeroed(l)
}

//export memkit_mem_realloc
func memkit_mem_realloc(p unsafe.Pointer, size, align, newSize C.size_t) unsafe.Pointer {
	l, ok := layoutOf(sz(size), sz(align))
	if !ok {
		return nil
	}
	return lib().Router().Realloc(p, l, sz(newSize))
}

//export memkit_mem_dealloc
func memkit_mem_dealloc(p unsafe.Pointer, size, align C.size_t) {
	lib().Router().Dealloc(p, rawLayout(sz(size), sz(align)))
}

//export memkit_mem_alloc_at
func memkit_mem_alloc_at(size, align, offset C.size_t) unsafe.Pointer {
	l, ok := layoutOf(sz(size), sz(align))
	if !ok {
		return nil
	}
	return lib().Router().AllocAt(l, sz(offset))
}

// Capability surface.

//export memkit_mem_malloc
func memkit_mem_malloc(size C.size_t) unsafe.Pointer { return lib().Malloc(sz(size)) }

//export memkit_mem_zalloc
func memkit_mem_zalloc(size C.size_t) unsafe.Pointer { return lib().Zalloc(sz(size)) }

//export memkit_mem_calloc
func memkit_mem_calloc(count, size C.size_t) unsafe.Pointer {
	return lib().Calloc(sz(count), sz(size))
}

//export memkit_mem_mallocn
func memkit_mem_mallocn(count, size C.size_t) unsafe.Pointer {
	return lib().Mallocn(sz(count), sz(size))
}

//export memkit_mem_realloc_raw
func memkit_mem_realloc_raw(p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().Realloc(p, sz(newSize))
}

//export memkit_mem_reallocn
func memkit_mem_reallocn(p unsafe.Pointer, count, size C.size_t) unsafe.Pointer {
	return lib().Reallocn(p, sz(count), sz(size))
}

//export memkit_mem_reallocf
func memkit_mem_reallocf(p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().Reallocf(p, sz(newSize))
}

//export memkit_mem_rezalloc
func memkit_mem_rezalloc(p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().Rezalloc(p, sz(newSize))
}

//export memkit_mem_recalloc
func memkit_mem_recalloc(p unsafe.Pointer, count, size C.size_t) unsafe.Pointer {
	return lib().Recalloc(p, sz(count), sz(size))
}

//export memkit_mem_malloc_small
func memkit_mem_malloc_small(size C.size_t) unsafe.Pointer { return lib().MallocSmall(sz(size)) }

//export memkit_mem_zalloc_small
func memkit_mem_zalloc_small(size C.size_t) unsafe.Pointer { return lib().ZallocSmall(sz(size)) }

//export memkit_mem_expand
func memkit_mem_expand(p unsafe.Pointer, newSize C.size_t) unsafe.Pointer {
	return lib().Expand(p, sz(newSize))
}

//export memkit_mem_free
func memkit_mem_free(p unsafe.Pointer) { lib().Free(p) }

//export memkit_mem_malloc_aligned
func memkit_mem_malloc_aligned(size, align C.size_t) unsafe.Pointer {
	return lib().MallocAligned(sz(size), sz(align))
}

//export memkit_mem_malloc_aligned_at
func memkit_mem_malloc_aligned_at(size, align, offset C.size_t) unsafe.Pointer {
	return lib().MallocAlignedAt(sz(size), sz(align), sz(offset))
}

//export memkit_mem_zalloc_aligned
func memkit_mem_zalloc_aligned(size, align C.size_t) unsafe.Pointer {
	return lib().ZallocAligned(sz(size), sz(align))
}

//export memkit_mem_zalloc_aligned_at
func memkit_mem_zalloc_aligned_at(size, align, offset C.size_t) unsafe.Pointer {
	return lib().ZallocAlignedAt(sz(size), sz(align), sz(offset))
}

//export memkit_mem_calloc_aligned
func memkit_mem_calloc_aligned(count, size, align C.size_t) unsafe.Pointer {
	return lib().CallocAligned(sz(count), sz(size), sz(align))
}

//export memkit_mem_calloc_aligned_at
func memkit_mem_calloc_aligned_at(count, size, align, offset C.size_t) unsafe.Pointer {
	return lib().CallocAlignedAt(sz(count), sz(size), sz(align), sz(offset))
}

//export memkit_mem_realloc_aligned
func memkit_mem_realloc_aligned(p unsafe.Pointer, newSize, align C.size_t) unsafe.Pointer {
	return lib().ReallocAligned(p, sz(newSize), sz(align))
}

//export memkit_mem_realloc_aligned_at
func memkit_mem_realloc_aligned_at(p unsafe.Pointer, newSize, align, offset C.size_t) unsafe.Pointer {
	return lib().ReallocAlignedAt(p, sz(newSize), sz(align), sz(offset))
}

//export memkit_mem_rezalloc_aligned
func memkit_mem_rezalloc_aligned(p unsafe.Pointer, newSize, align C.size_t) unsafe.Pointer {
	return lib().RezallocAligned(p, sz(newSize), sz(align))
}

//export memkit_mem_rezalloc_aligned_at
func memkit_mem_rezalloc_aligned_at(p unsafe.Pointer, newSize, align, offset C.size_t) unsafe.Pointer {
	return lib().RezallocAlignedAt(p, sz(newSize), sz(align), sz(offset))
}

//export memkit_mem_recalloc_aligned
func memkit_mem_recalloc_aligned(p unsafe.Pointer, count, size, align C.size_t) unsafe.Pointer {
	return lib().RecallocAligned(p, sz(count), sz(size), sz(align))
}

//export memkit_mem_recalloc_aligned_at
func memkit_mem_recalloc_aligned_at(p unsafe.Pointer, count, size, align, offset C.size_t) unsafe.Pointer {
	return lib().RecallocAlignedAt(p, sz(count), sz(size), sz(align), sz(offset))
}

//export memkit_mem_strdup
func memkit_mem_strdup(s *C.char) *C.char {
	return (*C.char)(lib().Strdup(unsafe.Pointer(s)))
}

//export memkit_mem_strndup
func memkit_mem_strndup(s *C.char, n C.size_t) *C.char {
	return (*C.char)(lib().Strndup(unsafe.Pointer(s), sz(n)))
}

//export memkit_mem_realpath
func memkit_mem_realpath(fname, resolved *C.char) *C.char {
	return (*C.char)(lib().Realpath(unsafe.Pointer(fname), unsafe.Pointer(resolved)))
}

//export memkit_mem_usable_size
func memkit_mem_usable_size(p unsafe.Pointer) C.size_t { return C.size_t(lib().UsableSize(p)) }

//export memkit_mem_good_size
func memkit_mem_good_size(size C.size_t) C.size_t { return C.size_t(lib().GoodSize(sz(size))) }

//export memkit_mem_check_owned
func memkit_mem_check_owned(p unsafe.Pointer) C.bool { return C.bool(lib().CheckOwned(p)) }

//export memkit_mem_is_in_heap_region
func memkit_mem_is_in_heap_region(p unsafe.Pointer) C.bool {
	return C.bool(lib().IsInHeapRegion(p))
}

//export memkit_mem_version
func memkit_mem_version() C.int { return C.int(lib().Version()) }
