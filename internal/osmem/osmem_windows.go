//go:build windows

package osmem

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// regions tracks live VirtualAlloc bases so a double release is a no-op.
var (
	regionsMu sync.Mutex
	regions   = map[uintptr]struct{}{}
)

// Map returns size bytes of committed read/write memory. huge is ignored;
// large pages need SeLockMemoryPrivilege and are only used by ReserveHuge.
func Map(size uintptr, _ bool) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("osmem: invalid mapping size %d", size)
	}
	return virtualAlloc(size, windows.MEM_COMMIT|windows.MEM_RESERVE)
}

// Unmap releases a region returned by Map or ReserveHuge.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	regionsMu.Lock()
	_, ok := regions[addr]
	delete(regions, addr)
	regionsMu.Unlock()
	if !ok {
		return nil
	}
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

func reserveHugePage(int) ([]byte, error) {
	data, err := virtualAlloc(HugePageSize, windows.MEM_COMMIT|windows.MEM_RESERVE|windows.MEM_LARGE_PAGES)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return data, nil
}

func virtualAlloc(size uintptr, flags uint32) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, size, flags, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	regionsMu.Lock()
	regions[addr] = struct{}{}
	regionsMu.Unlock()
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}
