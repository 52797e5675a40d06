// Package osmem maps memory directly from the operating system for blocks
// that bypass the Go heap: large OS-page allocations and huge page
// reservations.
package osmem

import (
	"errors"
	"time"
)

// HugePageSize is the size of one reserved huge OS page.
const HugePageSize = 1 << 30

var (
	// ErrUnsupported indicates the OS cannot provide the requested mapping.
	ErrUnsupported = errors.New("osmem: unsupported on this platform")

	// ErrTimeout indicates the deadline passed before all pages were reserved.
	ErrTimeout = errors.New("osmem: reservation timed out")
)

// ReserveHuge reserves up to pages huge OS pages, one at a time, stopping
// at the deadline. numaNode < 0 leaves placement to the OS. The pages
// reserved before a failure are returned together with the error.
func ReserveHuge(pages int, numaNode int, deadline time.Time) ([][]byte, error) {
	var out [][]byte
	for i := 0; i < pages; i++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return out, ErrTimeout
		}
		region, err := reserveHugePage(numaNode)
		if err != nil {
			return out, err
		}
		out = append(out, region)
	}
	return out, nil
}
