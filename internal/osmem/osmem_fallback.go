//go:build !unix && !windows

package osmem

import "fmt"

// Map falls back to Go memory when the OS exposes no mapping call.
func Map(size uintptr, _ bool) ([]byte, error) {
	if size == 0 || uint64(size) > uint64(^uint(0)>>1) {
		return nil, fmt.Errorf("osmem: invalid mapping size %d", size)
	}
	return make([]byte, size), nil
}

// Unmap drops the reference; the GC reclaims the memory.
func Unmap([]byte) error {
	return nil
}

func reserveHugePage(int) ([]byte, error) {
	return nil, ErrUnsupported
}
