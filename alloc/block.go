package alloc

import (
	"fmt"
	"unsafe"
)

// Block is an owned allocation together with the layout it was made with.
// The zero value is a released block.
type Block struct {
	r      *Router
	ptr    unsafe.Pointer
	layout Layout
}

// NewBlock allocates a block for l.
func (r *Router) NewBlock(l Layout) (*Block, error) {
	return r.newBlock(l, r.Alloc(l))
}

// NewZeroedBlock allocates a zeroed block for l.
func (r *Router) NewZeroedBlock(l Layout) (*Block, error) {
	return r.newBlock(l, r.AllocZeroed(l))
}

func (r *Router) newBlock(l Layout, p unsafe.Pointer) (*Block, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMemory, l)
	}
	return &Block{r: r, ptr: p, layout: l}, nil
}

// Scoped allocates a block for l, passes it to fn, and releases it when fn
// returns. fn may Detach the block to keep it.
func (r *Router) Scoped(l Layout, fn func(*Block) error) error {
	b, err := r.NewBlock(l)
	if err != nil {
		return err
	}
	defer b.Release()
	return fn(b)
}

// Bytes returns the block as a slice of Layout().Size bytes, or nil once
// released. The slice is invalid after Resize, Release or Detach.
func (b *Block) Bytes() []byte {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), b.layout.Size)
}

// Ptr returns the raw pointer, nil once released.
func (b *Block) Ptr() unsafe.Pointer { return b.ptr }

func (b *Block) Layout() Layout { return b.layout }

func (b *Block) Len() int { return int(b.layout.Size) }

// Released reports whether the block no longer owns memory.
func (b *Block) Released() bool { return b.ptr == nil }

// Resize changes the block's size. On failure the block keeps its memory,
// contents and layout.
func (b *Block) Resize(newSize uintptr) error {
	if b.ptr == nil {
		return ErrReleased
	}
	p := b.r.Realloc(b.ptr, b.layout, newSize)
	if p == nil {
		return fmt.Errorf("%w: resize %s to %d bytes", ErrNoMemory, b.layout, newSize)
	}
	b.ptr = p
	b.layout = b.layout.WithSize(newSize)
	return nil
}

// Release frees the block. Further calls do nothing.
func (b *Block) Release() {
	if b.ptr == nil {
		return
	}
	b.r.Dealloc(b.ptr, b.layout)
	b.ptr = nil
}

// Detach gives up ownership without freeing. The caller must eventually
// pass the pointer and layout to Router.Dealloc.
func (b *Block) Detach() (unsafe.Pointer, Layout) {
	p, l := b.ptr, b.layout
	b.ptr = nil
	return p, l
}
