//go:build windows

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var procGetCurrentProcessorNumberEx = windows.NewLazySystemDLL("kernel32.dll").
	NewProc("GetCurrentProcessorNumberEx")

// processorNumber is PROCESSOR_NUMBER.
type processorNumber struct {
	Group    uint16
	Number   uint8
	Reserved uint8
}

// CurrentCPU returns the processor index encoded as group<<6 | number,
// or -1 when the call is unavailable.
func CurrentCPU() int {
	if procGetCurrentProcessorNumberEx.Find() != nil {
		return -1
	}
	var pn processorNumber
	_, _, _ = procGetCurrentProcessorNumberEx.Call(uintptr(unsafe.Pointer(&pn)))
	return int(pn.Group)<<6 | int(pn.Number)
}
