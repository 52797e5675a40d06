/*
Package memkit is the public entry point of the allocator adapter.

# Quick Start

Create a surface over the default engine and allocate through its router:

	s, err := memkit.New()
	if err != nil {
	    log.Fatal(err)
	}
	defer s.Close()

	l, err := alloc.NewLayout(64, 16)
	if err != nil {
	    log.Fatal(err)
	}
	p := s.Router().Alloc(l)
	if p == nil {
	    // out of memory, or 16 exceeds the platform ceiling
	}
	s.Router().Dealloc(p, l)

# Engines

The default engine is the pure Go engine in engine/goheap. Building with
cgo and the mimalloc tag links the system libmimalloc instead:

	go build -tags mimalloc ./...

WithEngine injects any engine.Engine, which is how tests substitute a
recording engine.

# Allocator

Allocator is the four-operation capability that *alloc.Router implements.
Pass it explicitly where possible. SetDefault and Default are the single
process-wide registration point for code that cannot take one.

# Surface

Surface re-exposes every engine operation under the engine's own names.
Its only behavior of its own is nil pass-through: nil pointers, strings
and callbacks produce nil, zero or false without reaching the engine.
*/
package memkit
