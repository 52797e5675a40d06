package goheap

import (
	"fmt"
	"math"

	"github.com/joshuapare/memkit/internal/buf"
)

// SizeClassConfig defines the size class strategy.
type SizeClassConfig struct {
	// Name for this configuration (for stats and benchmarks)
	Name string

	// Small allocation settings (linear increments)
	SmallMin       uintptr // smallest class
	SmallMax       uintptr // end of the linear range
	SmallIncrement uintptr // step between small classes, a power of two

	// Medium allocation settings (logarithmic growth)
	MediumMax    uintptr // largest class
	GrowthFactor float64 // growth between medium classes

	// Requests above MediumMax round up to a multiple of LargeRound.
	LargeRound uintptr
}

var (
	// ConfigFine: 16-byte steps to 256B, then 12.5% growth to 4MiB.
	ConfigFine = SizeClassConfig{
		Name:           "Fine",
		SmallMin:       16,
		SmallMax:       256,
		SmallIncrement: 16,
		MediumMax:      4 << 20,
		GrowthFactor:   1.125,
		LargeRound:     4096,
	}

	// ConfigCoarse: fewer classes, more internal fragmentation.
	ConfigCoarse = SizeClassConfig{
		Name:           "Coarse",
		SmallMin:       16,
		SmallMax:       512,
		SmallIncrement: 32,
		MediumMax:      4 << 20,
		GrowthFactor:   2.0,
		LargeRound:     4096,
	}

	// DefaultSizeClasses is used when no table is configured.
	DefaultSizeClasses = ConfigFine
)

func (c SizeClassConfig) validate() error {
	switch {
	case c.SmallMin == 0 || c.SmallMin > c.SmallMax:
		return fmt.Errorf("%w: size classes %q: bad small range", ErrBadConfig, c.Name)
	case !buf.IsPow2(c.SmallIncrement):
		return fmt.Errorf("%w: size classes %q: increment must be a power of two", ErrBadConfig, c.Name)
	case c.MediumMax < c.SmallMax:
		return fmt.Errorf("%w: size classes %q: medium max below small max", ErrBadConfig, c.Name)
	case c.GrowthFactor <= 1:
		return fmt.Errorf("%w: size classes %q: growth factor must exceed 1", ErrBadConfig, c.Name)
	case !buf.IsPow2(c.LargeRound):
		return fmt.Errorf("%w: size classes %q: large round must be a power of two", ErrBadConfig, c.Name)
	}
	return nil
}

// sizeClassTable holds the computed class capacities in ascending order.
type sizeClassTable struct {
	config     SizeClassConfig
	capacities []uintptr
}

// newSizeClassTable computes class capacities from config.
func newSizeClassTable(config SizeClassConfig) *sizeClassTable {
	table := &sizeClassTable{
		config:     config,
		capacities: make([]uintptr, 0, 128),
	}

	// Phase 1: small classes, linear
	for size := config.SmallMin; size <= config.SmallMax; size += config.SmallIncrement {
		table.capacities = append(table.capacities, size)
	}

	// Phase 2: medium classes, logarithmic, kept on SmallIncrement multiples
	size := table.capacities[len(table.capacities)-1]
	for size < config.MediumMax {
		next := uintptr(math.Ceil(float64(size) * config.GrowthFactor))
		next, _ = buf.AlignUp(next, config.SmallIncrement)
		if next <= size {
			next = size + config.SmallIncrement // Ensure progress
		}
		if next > config.MediumMax {
			next = config.MediumMax
		}
		table.capacities = append(table.capacities, next)
		size = next
	}

	return table
}

// classOf returns the index of the smallest class that holds size, or
// len(capacities) for sizes above the largest class.
func (t *sizeClassTable) classOf(size uintptr) int {
	lo, hi := 0, len(t.capacities)-1

	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.capacities[mid] {
			if mid == 0 || size > t.capacities[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return len(t.capacities)
}

// goodSize rounds size up to its class capacity. ok is false when a large
// size cannot be rounded without wrapping.
func (t *sizeClassTable) goodSize(size uintptr) (uintptr, bool) {
	if idx := t.classOf(size); idx < len(t.capacities) {
		return t.capacities[idx], true
	}
	return buf.AlignUp(size, t.config.LargeRound)
}

// String returns the configuration name.
func (t *sizeClassTable) String() string {
	return t.config.Name
}

// NumClasses returns the number of classes (excluding large sizes).
func (t *sizeClassTable) NumClasses() int {
	return len(t.capacities)
}
