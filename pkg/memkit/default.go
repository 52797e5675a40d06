package memkit

import (
	"fmt"
	"sync"
)

var (
	defaultMu        sync.RWMutex
	defaultAllocator Allocator
)

// SetDefault installs a as the process-wide allocator and returns the
// previous one, which may be nil. Prefer passing an Allocator explicitly.
func SetDefault(a Allocator) Allocator {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultAllocator
	defaultAllocator = a
	return prev
}

// Default returns the process-wide allocator. When none is installed it
// creates a router over the build's default engine and installs it.
// It panics if that engine cannot be created.
func Default() Allocator {
	defaultMu.RLock()
	a := defaultAllocator
	defaultMu.RUnlock()
	if a != nil {
		return a
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultAllocator == nil {
		s, err := New()
		if err != nil {
			panic(fmt.Sprintf("memkit: default allocator: %v", err))
		}
		defaultAllocator = s.Router()
	}
	return defaultAllocator
}
