//go:build cgo

// Command libmemkit builds memkit as a C shared library:
//
//	go build -buildmode=c-shared -o libmemkit.so ./cmd/libmemkit
//
// Every export takes primitive or pointer arguments and reports failure
// with NULL, zero, false or a negative status.
package main

/*
#include <stdlib.h>
#include "callbacks.h"
*/
import "C"

import (
	"sync"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/engine"
	"github.com/joshuapare/memkit/pkg/memkit"
)

var (
	surfaceOnce sync.Once
	surface     *memkit.Surface
)

// lib returns the process surface, creating it on first use.
func lib() *memkit.Surface {
	surfaceOnce.Do(func() {
		s, err := memkit.New()
		if err != nil {
			panic("libmemkit: " + err.Error())
		}
		surface = s
	})
	return surface
}

// layoutOf validates a C layout. An invalid alignment yields ok == false.
func layoutOf(size, align uintptr) (alloc.Layout, bool) {
	l, err := alloc.NewLayout(size, align)
	return l, err == nil
}

// rawLayout skips validation; Dealloc only needs the pointer.
func rawLayout(size, align uintptr) alloc.Layout {
	return alloc.Layout{Size: size, Align: align}
}

func heapOf(h C.uintptr_t) engine.Heap { return engine.Heap(h) }

func sz(n C.size_t) uintptr { return uintptr(n) }

func main() {}
