package alloc

import (
	"unsafe"

	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/internal/platform"
)

// Router dispatches layouts to an engine. It holds no mutable state.
type Router struct {
	e      engine.Core
	policy platform.Policy
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithPolicy replaces the policy resolved for the running target.
func WithPolicy(p platform.Policy) RouterOption {
	return func(r *Router) {
		r.policy = p
	}
}

// NewRouter creates a router over e using platform.Current unless
// WithPolicy is given.
func NewRouter(e engine.Core, opts ...RouterOption) *Router {
	r := &Router{e: e, policy: platform.Current()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the policy the router decides with.
func (r *Router) Policy() platform.Policy {
	return r.policy
}

// Engine returns the engine requests are forwarded to.
func (r *Router) Engine() engine.Core {
	return r.e
}

// Alloc returns l.Size bytes aligned to l.Align, or nil.
func (r *Router) Alloc(l Layout) unsafe.Pointer {
	if r.policy.FastPath(l.Size, l.Align) {
		return r.e.Malloc(l.Size)
	}
	if r.policy.Exceeds(l.Align) {
		return nil
	}
	return r.e.MallocAligned(l.Size, l.Align)
}

// AllocZeroed is Alloc with zeroed memory.
func (r *Router) AllocZeroed(l Layout) unsafe.Pointer {
	if r.policy.FastPath(l.Size, l.Align) {
		return r.e.Zalloc(l.Size)
	}
	if r.policy.Exceeds(l.Align) {
		return nil
	}
	return r.e.ZallocAligned(l.Size, l.Align)
}

// Realloc resizes p, allocated with l, to newSize bytes. The path is chosen
// from newSize and l.Align. On nil, p is still valid and owned by the
// caller. Realloc(nil, l, n) allocates n bytes aligned to l.Align.
func (r *Router) Realloc(p unsafe.Pointer, l Layout, newSize uintptr) unsafe.Pointer {
	if p == nil {
		return r.Alloc(l.WithSize(newSize))
	}
	if r.policy.FastPath(newSize, l.Align) {
		return r.e.Realloc(p, newSize)
	}
	if r.policy.Exceeds(l.Align) {
		return nil
	}
	return r.e.ReallocAligned(p, newSize, l.Align)
}

// Dealloc releases p. Dealloc(nil, l) does nothing.
func (r *Router) Dealloc(p unsafe.Pointer, l Layout) {
	if p == nil {
		return
	}
	r.e.Free(p)
}

// AllocAt returns a block whose address plus offset is aligned to l.Align.
// It always takes the aligned path.
func (r *Router) AllocAt(l Layout, offset uintptr) unsafe.Pointer {
	if r.policy.Exceeds(l.Align) {
		return nil
	}
	return r.e.MallocAlignedAt(l.Size, l.Align, offset)
}

// AllocZeroedAt is AllocAt with zeroed memory.
func (r *Router) AllocZeroedAt(l Layout, offset uintptr) unsafe.Pointer {
	if r.policy.Exceeds(l.Align) {
		return nil
	}
	return r.e.ZallocAlignedAt(l.Size, l.Align, offset)
}
