// Package alloc routes allocation requests to an engine.
//
// # Overview
//
// Router turns a request described by a Layout (size and power-of-two
// alignment) into exactly one call on an engine.Core:
//
//	align <= MinAlign && align <= size  ->  Malloc / Zalloc / Realloc
//	otherwise                           ->  MallocAligned / ZallocAligned / ReallocAligned
//
// MinAlign is the alignment the engine's plain entry points already
// guarantee on this architecture (8 or 16 bytes, see internal/platform).
// Some operating systems cap the alignment their allocators accept; a
// request above that ceiling returns nil without reaching the engine.
//
// Resizes decide on the new size and the alignment the block was allocated
// with, and forward the existing pointer unchanged. The router never retries, never switches
// paths after a failure, keeps no state, and never logs.
//
// # Ownership
//
// A pointer returned by Alloc belongs to the caller. Passing it to Realloc
// consumes it only on success; on failure (nil) the original is still valid
// and still owned by the caller. Dealloc(nil) does nothing. Blocks may be
// freed from any goroutine.
//
// Block wraps a raw pointer with its layout so ownership is explicit:
//
//	b, err := router.NewBlock(alloc.Layout{Size: 4096, Align: 64})
//	if err != nil {
//	    return err
//	}
//	defer b.Release()
//
//	copy(b.Bytes(), data)
//	if err := b.Resize(8192); err != nil {
//	    // b still holds the original 4096 bytes
//	}
//
// # Thread Safety
//
// Router is safe for concurrent use if its engine is. Block is not; hand a
// block to another goroutine rather than sharing it.
package alloc
