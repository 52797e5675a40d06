//go:build linux

package osmem

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/memkit/internal/buf"
)

const mpolBind = 2

// Map returns size bytes of anonymous read/write memory. When huge is set
// the kernel is asked to back the range with transparent huge pages.
func Map(size uintptr, huge bool) ([]byte, error) {
	n, ok := buf.IntLen(size)
	if !ok || n == 0 {
		return nil, fmt.Errorf("osmem: invalid mapping size %d", size)
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	if huge {
		// Advisory; kernels without THP reject it and the mapping still works.
		_ = unix.Madvise(data, unix.MADV_HUGEPAGE)
	}
	return data, nil
}

// Unmap releases a region returned by Map or ReserveHuge.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

func reserveHugePage(numaNode int) ([]byte, error) {
	flags := unix.MAP_PRIVATE | unix.MAP_ANON | unix.MAP_HUGETLB | unix.MAP_NORESERVE | 30<<unix.MAP_HUGE_SHIFT
	data, err := unix.Mmap(-1, 0, HugePageSize, unix.PROT_READ|unix.PROT_WRITE, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	if numaNode >= 0 {
		if err := bindNode(data, numaNode); err != nil {
			_ = unix.Munmap(data)
			return nil, err
		}
	}
	return data, nil
}

// bindNode restricts the pages of data to one NUMA node.
func bindNode(data []byte, node int) error {
	mask := make([]uint64, node/64+1)
	mask[node/64] = 1 << (uint(node) % 64)
	_, _, errno := unix.Syscall6(
		unix.SYS_MBIND,
		uintptr(unsafe.Pointer(&data[0])),
		uintptr(len(data)),
		mpolBind,
		uintptr(unsafe.Pointer(&mask[0])),
		uintptr(len(mask)*64+1),
		0,
	)
	if errno != 0 {
		return fmt.Errorf("osmem: mbind node %d: %w", node, errno)
	}
	return nil
}
