// Package goheap is a pure Go allocator engine.
//
// # Overview
//
// Engine implements engine.Engine on top of Go memory, so memkit works
// without cgo. Every block is a Go byte slice over-allocated for alignment,
// registered by address, and pinned with runtime.Pinner until it is freed.
// The registry keeps the memory alive and pinning makes the address safe to
// hand to C code.
//
// Blocks at or above the large threshold come straight from the OS
// (internal/osmem) when the large_os_pages option is enabled.
//
// # Size Classes
//
// Requests are rounded up to a size class (GoodSize). The default table
// steps by 16 bytes up to 256 bytes and then grows by 12.5% per class up to
// 4MiB; larger requests round to 4KiB. UsableSize reports the class size,
// which is also the limit for Expand and in-place Realloc.
//
// # Heaps
//
// The engine starts with one backing heap, which is also the default heap.
// HeapNew creates isolated heaps; HeapDestroy frees every block in a heap,
// HeapDelete migrates live blocks to the backing heap. Free works on any
// block regardless of its heap and from any goroutine.
//
// # Options
//
// The option table mirrors mimalloc's. Unset options are seeded from
// MEMKIT_<NAME> environment variables on first read:
//
//	MEMKIT_SHOW_STATS=1       print statistics on Close
//	MEMKIT_SHOW_ERRORS=1      log detected errors (up to max_errors)
//	MEMKIT_VERBOSE=1          log heap lifecycle at debug level
//	MEMKIT_LARGE_OS_PAGES=1   map large blocks directly from the OS
//	MEMKIT_RESERVE_HUGE_OS_PAGES=N  reserve N 1GiB pages in ProcessInit
//
// # Thread Safety
//
// All methods are safe for concurrent use. The block registry is guarded by
// one mutex; statistics are atomic.
package goheap
