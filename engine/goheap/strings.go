package goheap

import (
	"path/filepath"
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

// PathMax bounds the result of Realpath, including the terminator.
const PathMax = 4096

// cstrlen returns the length of the NUL-terminated string at s, looking
// at no more than limit bytes.
func cstrlen(s unsafe.Pointer, limit uintptr) uintptr {
	var n uintptr
	for n < limit && *(*byte)(unsafe.Add(s, n)) != 0 {
		n++
	}
	return n
}

// dupString copies n bytes from s into a fresh NUL-terminated block.
func (e *Engine) dupString(hid engine.Heap, s unsafe.Pointer, n uintptr) unsafe.Pointer {
	p := e.allocate(hid, n+1, 1, 0)
	if p == nil {
		return nil
	}
	dst := unsafe.Slice((*byte)(p), n+1)
	copy(dst, unsafe.Slice((*byte)(s), n))
	dst[n] = 0
	return p
}

func (e *Engine) Strdup(s unsafe.Pointer) unsafe.Pointer {
	return e.HeapStrdup(0, s)
}

// Strndup copies at most n bytes of s.
func (e *Engine) Strndup(s unsafe.Pointer, n uintptr) unsafe.Pointer {
	return e.HeapStrndup(0, s, n)
}

// Realpath resolves fname to an absolute path without symlinks. With a nil
// resolved buffer the result is a new block; otherwise it is written to
// resolved, which must hold PathMax bytes.
func (e *Engine) Realpath(fname, resolved unsafe.Pointer) unsafe.Pointer {
	return e.HeapRealpath(0, fname, resolved)
}

func (e *Engine) HeapStrdup(h engine.Heap, s unsafe.Pointer) unsafe.Pointer {
	if s == nil {
		return nil
	}
	return e.dupString(h, s, cstrlen(s, ^uintptr(0)))
}

func (e *Engine) HeapStrndup(h engine.Heap, s unsafe.Pointer, n uintptr) unsafe.Pointer {
	if s == nil {
		return nil
	}
	return e.dupString(h, s, cstrlen(s, n))
}

func (e *Engine) HeapRealpath(h engine.Heap, fname, resolved unsafe.Pointer) unsafe.Pointer {
	if fname == nil {
		return nil
	}
	name := unsafe.String((*byte)(fname), cstrlen(fname, PathMax))
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil
	}
	target, err := filepath.EvalSymlinks(abs)
	if err != nil || len(target)+1 > PathMax {
		return nil
	}
	if resolved == nil {
		return e.dupString(h, unsafe.Pointer(unsafe.StringData(target)), uintptr(len(target)))
	}
	dst := unsafe.Slice((*byte)(resolved), len(target)+1)
	copy(dst, target)
	dst[len(target)] = 0
	return resolved
}
