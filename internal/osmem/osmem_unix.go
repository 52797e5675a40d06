//go:build unix && !linux

package osmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/memkit/internal/buf"
)

// Map returns size bytes of anonymous read/write memory. huge is ignored.
func Map(size uintptr, _ bool) ([]byte, error) {
	n, ok := buf.IntLen(size)
	if !ok || n == 0 {
		return nil, fmt.Errorf("osmem: invalid mapping size %d", size)
	}
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// Unmap releases a region returned by Map.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}

func reserveHugePage(int) ([]byte, error) {
	return nil, ErrUnsupported
}
