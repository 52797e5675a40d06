// Package enginetest provides a recording engine.Core for tests that need
// to see which entry point a request reached, and to make an entry point
// fail on demand.
package enginetest

import (
	"sync"
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

// Op names an engine.Core entry point.
type Op string

const (
	OpMalloc          Op = "Malloc"
	OpZalloc          Op = "Zalloc"
	OpRealloc         Op = "Realloc"
	OpFree            Op = "Free"
	OpMallocAligned   Op = "MallocAligned"
	OpZallocAligned   Op = "ZallocAligned"
	OpReallocAligned  Op = "ReallocAligned"
	OpMallocAlignedAt Op = "MallocAlignedAt"
	OpZallocAlignedAt Op = "ZallocAlignedAt"
)

// Call is one recorded request.
type Call struct {
	Op     Op
	Ptr    unsafe.Pointer // input pointer for Realloc*, Free
	Size   uintptr
	Align  uintptr // zero for the unaligned entry points
	Offset uintptr
	Result unsafe.Pointer
	Failed bool // the recorder forced a nil result
}

// Recorder forwards to an inner engine.Core and records every call.
type Recorder struct {
	inner engine.Core

	mu    sync.Mutex
	calls []Call
	fail  func(Call) bool
}

var _ engine.Core = (*Recorder)(nil)

// New wraps inner.
func New(inner engine.Core) *Recorder {
	return &Recorder{inner: inner}
}

// FailOn makes every following call to ops return nil without reaching the
// inner engine. Free cannot fail.
func (r *Recorder) FailOn(ops ...Op) {
	set := make(map[Op]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	r.FailWhen(func(c Call) bool { return set[c.Op] })
}

// FailWhen installs a predicate deciding which calls fail. nil clears it.
func (r *Recorder) FailWhen(fn func(Call) bool) {
	r.mu.Lock()
	r.fail = fn
	r.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Ops returns the recorded entry points in order.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]Op, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Last returns the most recent call.
func (r *Recorder) Last() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset forgets recorded calls. The failure predicate is kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// do records c, running forward unless the failure predicate matches.
func (r *Recorder) do(c Call, forward func() unsafe.Pointer) unsafe.Pointer {
	r.mu.Lock()
	fail := r.fail
	r.mu.Unlock()

	if c.Op != OpFree && fail != nil && fail(c) {
		c.Failed = true
	} else {
		c.Result = forward()
	}

	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
	return c.Result
}

func (r *Recorder) Malloc(size uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpMalloc, Size: size}, func() unsafe.Pointer {
		return r.inner.Malloc(size)
	})
}

func (r *Recorder) Zalloc(size uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpZalloc, Size: size}, func() unsafe.Pointer {
		return r.inner.Zalloc(size)
	})
}

func (r *Recorder) Realloc(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpRealloc, Ptr: p, Size: newSize}, func() unsafe.Pointer {
		return r.inner.Realloc(p, newSize)
	})
}

func (r *Recorder) Free(p unsafe.Pointer) {
	r.do(Call{Op: OpFree, Ptr: p}, func() unsafe.Pointer {
		r.inner.Free(p)
		return nil
	})
}

func (r *Recorder) MallocAligned(size, align uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpMallocAligned, Size: size, Align: align}, func() unsafe.Pointer {
		return r.inner.MallocAligned(size, align)
	})
}

func (r *Recorder) ZallocAligned(size, align uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpZallocAligned, Size: size, Align: align}, func() unsafe.Pointer {
		return r.inner.ZallocAligned(size, align)
	})
}

func (r *Recorder) ReallocAligned(p unsafe.Pointer, newSize, align uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpReallocAligned, Ptr: p, Size: newSize, Align: align}, func() unsafe.Pointer {
		return r.inner.ReallocAligned(p, newSize, align)
	})
}

func (r *Recorder) MallocAlignedAt(size, align, offset uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpMallocAlignedAt, Size: size, Align: align, Offset: offset}, func() unsafe.Pointer {
		return r.inner.MallocAlignedAt(size, align, offset)
	})
}

func (r *Recorder) ZallocAlignedAt(size, align, offset uintptr) unsafe.Pointer {
	return r.do(Call{Op: OpZallocAlignedAt, Size: size, Align: align, Offset: offset}, func() unsafe.Pointer {
		return r.inner.ZallocAlignedAt(size, align, offset)
	})
}
