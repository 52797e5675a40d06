//go:build cgo && mimalloc

package mimalloc

/*
#include <stdbool.h>
#include <stdint.h>
#include <mimalloc.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/joshuapare/memkit/engine"
)

// visit carries a BlockVisitFunc through mi_heap_visit_blocks.
type visit struct {
	heap engine.Heap
	fn   engine.BlockVisitFunc
}

//export memkitMiDeferred
func memkitMiDeferred(force C.bool, heartbeat C.ulonglong, handle C.uintptr_t) {
	if fn, ok := cgo.Handle(handle).Value().(engine.DeferredFreeFunc); ok {
		fn(bool(force), uint64(heartbeat))
	}
}

//export memkitMiOutput
func memkitMiOutput(msg *C.char, handle C.uintptr_t) {
	if fn, ok := cgo.Handle(handle).Value().(engine.OutputFunc); ok {
		fn(C.GoString(msg))
	}
}

//export memkitMiError
func memkitMiError(errno C.int, handle C.uintptr_t) {
	if fn, ok := cgo.Handle(handle).Value().(engine.ErrorFunc); ok {
		fn(int(errno))
	}
}

//export memkitMiVisit
func memkitMiVisit(heap C.uintptr_t, area *C.mi_heap_area_t, block unsafe.Pointer, blockSize C.size_t, handle C.uintptr_t) C.bool {
	v, ok := cgo.Handle(handle).Value().(*visit)
	if !ok {
		return false
	}
	a := engine.Area{
		Blocks:    area.blocks,
		Reserved:  uintptr(area.reserved),
		Committed: uintptr(area.committed),
		Used:      uintptr(area.used),
		BlockSize: uintptr(area.block_size),
	}
	return C.bool(v.fn(v.heap, &a, block, uintptr(blockSize)))
}
