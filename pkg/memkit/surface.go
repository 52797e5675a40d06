package memkit

import (
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

var _ engine.Engine = (*Surface)(nil)

func (s *Surface) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	s.Engine.Free(p)
}

func (s *Surface) Expand(p unsafe.Pointer, newSize uintptr) unsafe.Pointer {
	if p == nil {
		return nil
	}
	return s.Engine.Expand(p, newSize)
}

func (s *Surface) Strdup(str unsafe.Pointer) unsafe.Pointer {
	if str == nil {
		return nil
	}
	return s.Engine.Strdup(str)
}

func (s *Surface) Strndup(str unsafe.Pointer, n uintptr) unsafe.Pointer {
	if str == nil {
		return nil
	}
	return s.Engine.Strndup(str, n)
}

func (s *Surface) Realpath(fname, resolved unsafe.Pointer) unsafe.Pointer {
	if fname == nil {
		return nil
	}
	return s.Engine.Realpath(fname, resolved)
}

func (s *Surface) UsableSize(p unsafe.Pointer) uintptr {
	if p == nil {
		return 0
	}
	return s.Engine.UsableSize(p)
}

func (s *Surface) CheckOwned(p unsafe.Pointer) bool {
	return p != nil && s.Engine.CheckOwned(p)
}

func (s *Surface) IsInHeapRegion(p unsafe.Pointer) bool {
	return p != nil && s.Engine.IsInHeapRegion(p)
}

// HeapVisitBlocks returns false without visiting when fn is nil.
func (s *Surface) HeapVisitBlocks(h engine.Heap, visitAll bool, fn engine.BlockVisitFunc) bool {
	if fn == nil {
		return false
	}
	return s.Engine.HeapVisitBlocks(h, visitAll, fn)
}

func (s *Surface) HeapContainsBlock(h engine.Heap, p unsafe.Pointer) bool {
	return p != nil && s.Engine.HeapContainsBlock(h, p)
}

func (s *Surface) HeapCheckOwned(h engine.Heap, p unsafe.Pointer) bool {
	return p != nil && s.Engine.HeapCheckOwned(h, p)
}

func (s *Surface) HeapStrdup(h engine.Heap, str unsafe.Pointer) unsafe.Pointer {
	if str == nil {
		return nil
	}
	return s.Engine.HeapStrdup(h, str)
}

func (s *Surface) HeapStrndup(h engine.Heap, str unsafe.Pointer, n uintptr) unsafe.Pointer {
	if str == nil {
		return nil
	}
	return s.Engine.HeapStrndup(h, str, n)
}

func (s *Surface) HeapRealpath(h engine.Heap, fname, resolved unsafe.Pointer) unsafe.Pointer {
	if fname == nil {
		return nil
	}
	return s.Engine.HeapRealpath(h, fname, resolved)
}
