//go:build !linux && !windows

package platform

// CurrentCPU is not supported on this OS.
func CurrentCPU() int {
	return -1
}
