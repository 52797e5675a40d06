package goheap

import (
	"unsafe"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/internal/buf"
)

// count multiplies count by size, reporting EOVERFLOW when it wraps.
func (e *Engine) count(count, size uintptr) (uintptr, bool) {
	n, ok := buf.MulSize(count, size)
	if !ok {
		e.fail(engine.EOVERFLOW)
	}
	return n, ok
}

func (e *Engine) Calloc(count, size uintptr) unsafe.Pointer {
	return e.HeapCalloc(0, count, size)
}

func (e *Engine) Mallocn(count, size uintptr) unsafe.Pointer {
	return e.HeapMallocn(0, count, size)
}

func (e *Engine) Reallocn(p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return e.HeapReallocn(0, p, count, size)
}

// Reallocf is Realloc that frees p when the resize fails.
func (e *Engine) Reallocf(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return e.HeapReallocf(0, p, newSize)
}

// Rezalloc is Realloc that zeroes any growth.
func (e *Engine) Rezalloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return e.reallocate(0, p, newSize, 1, 0, true)
}

func (e *Engine) Recalloc(p unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return e.HeapRecalloc(0, p, count, size)
}

// MallocSmall accepts sizes up to SmallSizeMax.
func (e *Engine) MallocSmall(size uintptr) unsafe.Pointer {
	return e.HeapMallocSmall(0, size)
}

func (e *Engine) ZallocSmall(size uintptr) unsafe.Pointer {
	return e.HeapMallocSmall(0, size)
}

// Expand grows p within its usable size. It returns p on success and nil
// when the block would have to move.
func (e *Engine) Expand(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if p == nil {
		return nil
	}
	e.mu.Lock()
	b, errno := e.lookup(p)
	if b == nil {
		e.mu.Unlock()
		e.report(errno)
		return nil
	}
	if newSize > b.usable {
		e.mu.Unlock()
		return nil
	}
	b.size = newSize
	e.mu.Unlock()
	return p
}

func (e *Engine) CallocAligned(count, size, align uintptr) unsafe.Pointer {
	return e.HeapCallocAlignedAt(0, count, size, align, 0)
}

func (e *Engine) CallocAlignedAt(count, size, align, offset uintptr) unsafe.Pointer {
	return e.HeapCallocAlignedAt(0, count, size, align, offset)
}

func (e *Engine) ReallocAlignedAt(p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return e.reallocate(0, p, newSize, align, offset, false)
}

func (e *Engine) RezallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return e.reallocate(0, p, newSize, align, 0, true)
}

func (e *Engine) RezallocAlignedAt(p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer {
	return e.reallocate(0, p, newSize, align, offset, true)
}

func (e *Engine) RecallocAligned(p unsafe.Pointer, count, size, align uintptr) unsafe.Pointer {
	return e.HeapRecallocAlignedAt(0, p, count, size, align, 0)
}

func (e *Engine) RecallocAlignedAt(p unsafe.Pointer, count, size, align, offset uintptr) unsafe.Pointer {
	return e.HeapRecallocAlignedAt(0, p, count, size, align, offset)
}
