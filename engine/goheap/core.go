package goheap

import "unsafe"

// Malloc returns size bytes aligned to the platform minimum.
func (e *Engine) Malloc(size uintptr) unsafe.Pointer {
	return e.allocate(0, size, 1, 0)
}

// Zalloc returns size zeroed bytes.
func (e *Engine) Zalloc(size uintptr) unsafe.Pointer {
	return e.allocate(0, size, 1, 0)
}

// Realloc resizes p, keeping it in its heap. Realloc(nil, n) allocates.
func (e *Engine) Realloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return e.reallocate(0, p, newSize, 1, 0, false)
}

// Free releases p. Freeing a pointer the engine does not own reports
// EFAULT, or EAGAIN when it was freed recently.
func (e *Engine) Free(p unsafe.Pointer) {
	e.free(p)
}

func (e *Engine) MallocAligned(size, align uintptr) unsafe.Pointer {
	return e.allocate(0, size, align, 0)
}

func (e *Engine) ZallocAligned(size, align uintptr) unsafe.Pointer {
	return e.allocate(0, size, align, 0)
}

func (e *Engine) ReallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return e.reallocate(0, p, newSize, align, 0, false)
}

func (e *Engine) MallocAlignedAt(size, align, offset uintptr) unsafe.Pointer {
	return e.allocate(0, size, align, offset)
}

func (e *Engine) ZallocAlignedAt(size, align, offset uintptr) unsafe.Pointer {
	return e.allocate(0, size, align, offset)
}
