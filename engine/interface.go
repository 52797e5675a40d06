package engine

import "unsafe"

// Core is the part of the engine the allocation router dispatches to.
type Core interface {
	// Malloc returns size bytes aligned to the platform minimum, or nil.
	Malloc(size uintptr) unsafe.Pointer
	// Zalloc is Malloc with zeroed memory.
	Zalloc(size uintptr) unsafe.Pointer
	// Realloc resizes p. On nil the original block is untouched.
	Realloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer
	// Free releases p. Free(nil) does nothing.
	Free(p unsafe.Pointer)

	MallocAligned(size, align uintptr) unsafe.Pointer
	ZallocAligned(size, align uintptr) unsafe.Pointer
	ReallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer

	// MallocAlignedAt aligns p+offset rather than p.
	MallocAlignedAt(size, align, offset uintptr) unsafe.Pointer
	ZallocAlignedAt(size, align, offset uintptr) unsafe.Pointer
}

// Counted holds the counted, small, zero-resize and in-place entry points.
type Counted interface {
	Calloc(count, size uintptr) unsafe.Pointer
	Mallocn(count, size uintptr) unsafe.Pointer
	Reallocn(p unsafe.Pointer, count, size uintptr) unsafe.Pointer
	// Reallocf frees p when the resize fails.
	Reallocf(p unsafe.Pointer, newSize uintptr) unsafe.Pointer
	Rezalloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer
	Recalloc(p unsafe.Pointer, count, size uintptr) unsafe.Pointer
	MallocSmall(size uintptr) unsafe.Pointer
	ZallocSmall(size uintptr) unsafe.Pointer
	// Expand grows p in place or returns nil; it never relocates.
	Expand(p unsafe.Pointer, newSize uintptr) unsafe.Pointer

	CallocAligned(count, size, align uintptr) unsafe.Pointer
	CallocAlignedAt(count, size, align, offset uintptr) unsafe.Pointer
	ReallocAlignedAt(p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer
	RezallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer
	RezallocAlignedAt(p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer
	RecallocAligned(p unsafe.Pointer, count, size, align uintptr) unsafe.Pointer
	RecallocAlignedAt(p unsafe.Pointer, count, size, align, offset uintptr) unsafe.Pointer
}

// Strings duplicates NUL-terminated strings into engine memory.
type Strings interface {
	Strdup(s unsafe.Pointer) unsafe.Pointer
	Strndup(s unsafe.Pointer, n uintptr) unsafe.Pointer
	// Realpath resolves fname. When resolved is nil the result is allocated
	// by the engine and must be freed by the caller.
	Realpath(fname, resolved unsafe.Pointer) unsafe.Pointer
}

// Introspection answers questions about blocks without changing them.
type Introspection interface {
	UsableSize(p unsafe.Pointer) uintptr
	GoodSize(size uintptr) uintptr
	CheckOwned(p unsafe.Pointer) bool
	IsInHeapRegion(p unsafe.Pointer) bool
	Version() int
}

// Heaps is the heap-scoped surface.
type Heaps interface {
	HeapNew() Heap
	// HeapDelete releases the heap and migrates its live blocks to the
	// backing heap.
	HeapDelete(h Heap)
	// HeapDestroy releases the heap and every block still in it.
	HeapDestroy(h Heap)
	// HeapSetDefault makes h the default heap and returns the previous one.
	HeapSetDefault(h Heap) Heap
	HeapGetDefault() Heap
	HeapGetBacking() Heap
	HeapCollect(h Heap, force bool)
	HeapVisitBlocks(h Heap, visitAll bool, fn BlockVisitFunc) bool
	HeapContainsBlock(h Heap, p unsafe.Pointer) bool
	HeapCheckOwned(h Heap, p unsafe.Pointer) bool

	HeapMalloc(h Heap, size uintptr) unsafe.Pointer
	HeapZalloc(h Heap, size uintptr) unsafe.Pointer
	HeapCalloc(h Heap, count, size uintptr) unsafe.Pointer
	HeapMallocn(h Heap, count, size uintptr) unsafe.Pointer
	HeapMallocSmall(h Heap, size uintptr) unsafe.Pointer
	HeapRealloc(h Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer
	HeapReallocn(h Heap, p unsafe.Pointer, count, size uintptr) unsafe.Pointer
	HeapReallocf(h Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer
	HeapRezalloc(h Heap, p unsafe.Pointer, newSize uintptr) unsafe.Pointer
	HeapRecalloc(h Heap, p unsafe.Pointer, count, size uintptr) unsafe.Pointer
	HeapStrdup(h Heap, s unsafe.Pointer) unsafe.Pointer
	HeapStrndup(h Heap, s unsafe.Pointer, n uintptr) unsafe.Pointer
	HeapRealpath(h Heap, fname, resolved unsafe.Pointer) unsafe.Pointer
	HeapMallocAligned(h Heap, size, align uintptr) unsafe.Pointer
	HeapMallocAlignedAt(h Heap, size, align, offset uintptr) unsafe.Pointer
	HeapZallocAligned(h Heap, size, align uintptr) unsafe.Pointer
	HeapZallocAlignedAt(h Heap, size, align, offset uintptr) unsafe.Pointer
	HeapCallocAligned(h Heap, count, size, align uintptr) unsafe.Pointer
	HeapCallocAlignedAt(h Heap, count, size, align, offset uintptr) unsafe.Pointer
	HeapReallocAligned(h Heap, p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer
	HeapReallocAlignedAt(h Heap, p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer
	HeapRezallocAligned(h Heap, p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer
	HeapRezallocAlignedAt(h Heap, p unsafe.Pointer, newSize, align, offset uintptr) unsafe.Pointer
	HeapRecallocAligned(h Heap, p unsafe.Pointer, count, size, align uintptr) unsafe.Pointer
	HeapRecallocAlignedAt(h Heap, p unsafe.Pointer, count, size, align, offset uintptr) unsafe.Pointer
}

// Diagnostics covers callbacks, statistics, lifecycle and OS reservations.
type Diagnostics interface {
	Collect(force bool)
	RegisterDeferredFree(fn DeferredFreeFunc)
	// RegisterOutput redirects engine output; nil restores the default sink.
	RegisterOutput(fn OutputFunc)
	RegisterError(fn ErrorFunc)

	StatsReset()
	StatsMerge()
	StatsPrint()
	StatsPrintOut(fn OutputFunc)
	ThreadStatsPrintOut(fn OutputFunc)

	ProcessInit()
	ThreadInit()
	ThreadDone()

	// ReserveHugeOSPages reserves up to pages 1GiB pages within maxSecs.
	// It returns the number reserved and 0 or an errno.
	ReserveHugeOSPages(pages uintptr, maxSecs float64) (reserved uintptr, errno int)
	ReserveHugeOSPagesAt(pages uintptr, numaNode int, timeoutMsecs uintptr) int
	ReserveHugeOSPagesInterleave(pages, numaNodes, timeoutMsecs uintptr) int
}

// Options is the option table. The Default variants only take effect for
// options that have not been read or set yet.
type Options interface {
	OptionIsEnabled(o Option) bool
	OptionEnable(o Option)
	OptionDisable(o Option)
	OptionSetEnabled(o Option, enable bool)
	OptionSetEnabledDefault(o Option, enable bool)
	OptionGet(o Option) int64
	OptionSet(o Option, value int64)
	OptionSetDefault(o Option, value int64)
}

// Engine is the full capability set.
type Engine interface {
	Core
	Counted
	Strings
	Introspection
	Heaps
	Diagnostics
	Options
}

// Stats is a snapshot of engine counters. Engines that can produce one
// implement StatsReporter.
type Stats struct {
	Allocs        uint64 // successful allocations
	Frees         uint64 // blocks released
	Reallocs      uint64 // successful resizes
	Failures      uint64 // requests that returned nil
	LiveBlocks    int64
	LiveBytes     int64 // usable bytes of live blocks
	PeakBytes     int64
	Heaps         int64 // heaps currently alive, backing heap included
	Threads       int64 // ThreadInit minus ThreadDone
	OSBytes       int64 // bytes mapped directly from the OS
	ReservedPages int64 // huge OS pages reserved
}

// StatsReporter is implemented by engines that expose structured stats.
type StatsReporter interface {
	Stats() Stats
}
