// Package mimalloc binds the system libmimalloc as an engine.Engine.
//
// The package only builds with cgo and the mimalloc build tag:
//
//	go build -tags mimalloc ./...
//
// It links against -lmimalloc; set CGO_CFLAGS and CGO_LDFLAGS when the
// library is not installed in a default location.
//
// mimalloc is process-global. Every Engine value talks to the same
// allocator, so callbacks and options registered through one are seen by
// all. Heap handle 0 selects the calling thread's default heap.
//
// Options that mimalloc 2.x removed (segment_cache, page_reset,
// segment_reset) read as 0 and ignore writes.
package mimalloc
