//go:build linux

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// CurrentCPU returns the logical processor the calling thread is running on,
// or -1 when the kernel does not report it. The goroutine may migrate right
// after the call; the value is diagnostic only.
func CurrentCPU() int {
	var cpu, node uint32
	_, _, errno := unix.RawSyscall(
		unix.SYS_GETCPU,
		uintptr(unsafe.Pointer(&cpu)),
		uintptr(unsafe.Pointer(&node)),
		0,
	)
	if errno != 0 {
		return -1
	}
	return int(cpu)
}
