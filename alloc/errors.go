package alloc

import "errors"

var (
	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("alloc: alignment is not a power of two")

	// ErrNoMemory indicates the engine returned nil.
	ErrNoMemory = errors.New("alloc: out of memory")

	// ErrReleased indicates use of a Block after Release or Detach.
	ErrReleased = errors.New("alloc: block already released")

	// ErrOverflow indicates a size computation wrapped.
	ErrOverflow = errors.New("alloc: size overflow")
)
