package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
)

// Layout describes a block: its size in bytes and its alignment, which is
// always a power of two. Build one with NewLayout, LayoutOf or ArrayLayout
// to have the alignment checked.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates align and returns the layout.
func NewLayout(size, align uintptr) (Layout, error) {
	if !buf.IsPow2(align) {
		return Layout{}, fmt.Errorf("%w: %d", ErrBadAlign, align)
	}
	if _, ok := buf.AlignUp(size, align); !ok {
		return Layout{}, fmt.Errorf("%w: %d bytes aligned to %d", ErrOverflow, size, align)
	}
	return Layout{Size: size, Align: align}, nil
}

// LayoutOf returns the layout of a single T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// ArrayLayout returns the layout of n consecutive T values.
func ArrayLayout[T any](n uintptr) (Layout, error) {
	elem := LayoutOf[T]()
	size, ok := buf.MulSize(n, elem.Size)
	if !ok {
		return Layout{}, fmt.Errorf("%w: %d elements of %d bytes", ErrOverflow, n, elem.Size)
	}
	return Layout{Size: size, Align: elem.Align}, nil
}

// WithSize returns l resized to n, keeping the alignment.
func (l Layout) WithSize(n uintptr) Layout {
	return Layout{Size: n, Align: l.Align}
}

func (l Layout) String() string {
	return fmt.Sprintf("%d@%d", l.Size, l.Align)
}
